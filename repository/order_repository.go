package repository

import (
	"context"

	"github.com/wenrir/simple-resturant/common/errors"
	"github.com/wenrir/simple-resturant/models"

	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates the gorm-backed order repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// activeOrders scopes a query to orders whose table is still occupied.
func (r *orderRepository) activeOrders(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Joins("JOIN tables ON tables.id = orders.table_id AND tables.total = ?", models.OpenTotal)
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.PublishedAt == "" {
		order.PublishedAt = models.Timestamp()
	}
	return translate(r.db.WithContext(ctx).Create(order).Error)
}

func (r *orderRepository) Find(ctx context.Context, orderID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := withRetry(ctx, func() error {
		return r.activeOrders(ctx).Where("orders.id = ?", orderID).Find(&orders).Error
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindForTable(ctx context.Context, tableID uint) ([]models.Order, error) {
	orders := []models.Order{}
	err := withRetry(ctx, func() error {
		return r.activeOrders(ctx).
			Where("orders.table_id = ?", tableID).
			Order("orders.id").
			Find(&orders).Error
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindItemsForTable(ctx context.Context, tableID, itemID uint) ([]models.Item, error) {
	items := []models.Item{}
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).Model(&models.Item{}).
			Joins("JOIN orders ON orders.item_id = items.id").
			Joins("JOIN tables ON tables.id = orders.table_id AND tables.total = ?", models.OpenTotal).
			Where("orders.table_id = ? AND items.id = ?", tableID, itemID).
			Distinct("items.*").
			Find(&items).Error
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) DeleteTableOrder(ctx context.Context, tableID, orderID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND table_id = ?", orderID, tableID).
		Delete(&models.Order{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		// An order id living under a different table is deliberately reported
		// the same as a missing one.
		return errors.NotFound("Unable to find order id!")
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, orderID uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Order{}, orderID)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.NotFound("Unable to find order id!")
	}
	return nil
}

func (r *orderRepository) All(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).Order("id").Find(&orders).Error
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Total(ctx context.Context, tableID uint) (int, error) {
	// One joined aggregate instead of loading every order and resolving its
	// item separately.
	var total int
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).Model(&models.Order{}).
			Select("COALESCE(SUM(items.price * orders.quantity), 0)").
			Joins("JOIN items ON items.id = orders.item_id").
			Where("orders.table_id = ?", tableID).
			Scan(&total).Error
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
