package services

import (
	"context"
	"strings"
	"testing"

	"github.com/wenrir/simple-resturant/common/errors"
	"github.com/wenrir/simple-resturant/models"
	"github.com/wenrir/simple-resturant/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitBatchPartialSuccess(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewOrderService(store)

	_, err := store.Tables().Create(ctx, 5)
	require.NoError(t, err)
	item := models.Item{Description: "Coffee", Price: 3}
	require.NoError(t, store.Items().Create(ctx, &item))

	results := svc.Submit(ctx, []OrderLine{
		{TableID: 5, ItemID: item.ID, Quantity: 1},
		{TableID: 9, ItemID: item.ID, Quantity: 1}, // table 9 never checked in
		{TableID: 5, ItemID: item.ID, Quantity: 2},
	})

	require.Len(t, results, 3)
	assert.True(t, strings.HasPrefix(results[0], "OK:"), results[0])
	assert.True(t, strings.HasPrefix(results[1], "ERROR:"), results[1])
	assert.True(t, strings.HasPrefix(results[2], "OK:"), results[2])

	// Lines around the failure are persisted; the failing line is not.
	orders, err := store.Orders().All(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestSubmitUnknownItem(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewOrderService(store)

	_, err := store.Tables().Create(ctx, 5)
	require.NoError(t, err)

	results := svc.Submit(ctx, []OrderLine{{TableID: 5, ItemID: 42, Quantity: 1}})
	require.Len(t, results, 1)
	assert.True(t, strings.HasPrefix(results[0], "ERROR:"), results[0])

	orders, err := store.Orders().All(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestSubmitRejectsNonPositiveQuantity(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewOrderService(store)

	_, err := store.Tables().Create(ctx, 5)
	require.NoError(t, err)
	item := models.Item{Description: "Tea", Price: 2}
	require.NoError(t, store.Items().Create(ctx, &item))

	results := svc.Submit(ctx, []OrderLine{{TableID: 5, ItemID: item.ID, Quantity: 0}})
	require.Len(t, results, 1)
	assert.True(t, strings.HasPrefix(results[0], "ERROR:"), results[0])
}

func TestSubmitSurfacesStorageFailure(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewOrderService(store)

	store.FailNext = errors.Unavailable(nil)
	results := svc.Submit(ctx, []OrderLine{{TableID: 5, ItemID: 1, Quantity: 1}})
	require.Len(t, results, 1)
	assert.True(t, strings.HasPrefix(results[0], "ERROR:"), results[0])
}
