package repository

import (
	"context"
	"testing"

	"github.com/wenrir/simple-resturant/common/errors"
	"github.com/wenrir/simple-resturant/models"

	"github.com/stretchr/testify/assert"
)

func TestItemRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()

	items, err := repo.All(ctx)
	assert.NoError(t, err)
	assert.Empty(t, items)

	item := models.Item{Description: "Coffee", Price: 3, EstimatedMinutes: 5}
	assert.NoError(t, repo.Create(ctx, &item))
	assert.NotZero(t, item.ID)

	found, err := repo.Get(ctx, item.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Coffee", found.Description)
	assert.Equal(t, 3, found.Price)

	_, err = repo.Get(ctx, 999)
	assert.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindNotFound))

	items, err = repo.All(ctx)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}
