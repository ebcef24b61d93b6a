package repository

import (
	"context"
	"fmt"

	"github.com/wenrir/simple-resturant/common/errors"
	"github.com/wenrir/simple-resturant/models"

	"gorm.io/gorm"
)

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates the gorm-backed item repository.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) error {
	return translate(r.db.WithContext(ctx).Create(item).Error)
}

func (r *itemRepository) Get(ctx context.Context, id uint) (models.Item, error) {
	var item models.Item
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).First(&item, id).Error
	})
	if err != nil {
		if errors.IsKind(err, errors.KindNotFound) {
			return models.Item{}, errors.NotFound(fmt.Sprintf("Unable to find item %d", id))
		}
		return models.Item{}, err
	}
	return item, nil
}

func (r *itemRepository) All(ctx context.Context) ([]models.Item, error) {
	items := []models.Item{}
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).Order("id").Find(&items).Error
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
