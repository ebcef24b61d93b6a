package services

import (
	"context"
	"fmt"

	"github.com/wenrir/simple-resturant/common/logger"
	"github.com/wenrir/simple-resturant/models"
	"github.com/wenrir/simple-resturant/repository"

	"go.uber.org/zap"
)

// OrderLine is one submitted {table, item, quantity} tuple. TableID carries
// the client-facing table number; the service resolves it to the occupied
// row's surrogate id.
type OrderLine struct {
	TableID  int  `json:"table_id" binding:"required,gt=0"`
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,gt=0"`
}

// OrderService owns batch order submission.
type OrderService struct {
	store repository.Store
}

// NewOrderService creates an OrderService on top of a store.
func NewOrderService(store repository.Store) *OrderService {
	return &OrderService{store: store}
}

// Submit inserts each line independently and reports a status per line.
// A failing line never rolls back lines that already succeeded; the batch is
// deliberately not atomic.
func (s *OrderService) Submit(ctx context.Context, lines []OrderLine) []string {
	results := make([]string, 0, len(lines))
	for _, line := range lines {
		results = append(results, s.submitLine(ctx, line))
	}
	return results
}

func (s *OrderService) submitLine(ctx context.Context, line OrderLine) string {
	if line.Quantity <= 0 {
		return fmt.Sprintf("ERROR: table %d item %d: quantity must be positive", line.TableID, line.ItemID)
	}

	table, err := s.store.Tables().GetActive(ctx, line.TableID)
	if err != nil {
		return fmt.Sprintf("ERROR: table %d: %v", line.TableID, err)
	}

	item, err := s.store.Items().Get(ctx, line.ItemID)
	if err != nil {
		return fmt.Sprintf("ERROR: table %d item %d: %v", line.TableID, line.ItemID, err)
	}

	order := models.Order{
		ItemID:   item.ID,
		TableID:  table.ID,
		Quantity: line.Quantity,
	}
	if err := s.store.Orders().Create(ctx, &order); err != nil {
		return fmt.Sprintf("ERROR: table %d item %d: %v", line.TableID, line.ItemID, err)
	}

	logger.Log.Info("Order placed",
		zap.Uint("order_id", order.ID),
		zap.Int("table_number", line.TableID),
		zap.Uint("item_id", item.ID),
		zap.Int("quantity", line.Quantity),
	)
	return fmt.Sprintf("OK: order %d placed for table %d", order.ID, line.TableID)
}
