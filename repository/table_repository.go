package repository

import (
	"context"
	"fmt"

	"github.com/wenrir/simple-resturant/common/errors"
	"github.com/wenrir/simple-resturant/models"

	"gorm.io/gorm"
)

type tableRepository struct {
	db *gorm.DB
}

// NewTableRepository creates the gorm-backed table repository.
func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) Create(ctx context.Context, tableNumber int) (models.Table, error) {
	// Pre-read keeps the common case friendly; the partial unique index on
	// (table_number) WHERE total = -1 closes the race between the read and
	// the insert.
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Table{}).
		Where("table_number = ? AND total = ?", tableNumber, models.OpenTotal).
		Count(&count).Error
	if err != nil {
		return models.Table{}, translate(err)
	}
	if count > 0 {
		return models.Table{}, errors.Conflict(fmt.Sprintf("Table %d is already checked in", tableNumber))
	}

	table := models.Table{
		TableNumber:   tableNumber,
		CheckedInTime: models.Timestamp(),
		Total:         models.OpenTotal,
	}
	if err := r.db.WithContext(ctx).Create(&table).Error; err != nil {
		appErr := translate(err)
		if errors.IsKind(appErr, errors.KindConflict) {
			return models.Table{}, errors.Conflict(fmt.Sprintf("Table %d is already checked in", tableNumber))
		}
		return models.Table{}, appErr
	}
	return table, nil
}

func (r *tableRepository) GetActive(ctx context.Context, tableNumber int) (models.Table, error) {
	var table models.Table
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("table_number = ? AND total = ?", tableNumber, models.OpenTotal).
			First(&table).Error
	})
	if err != nil {
		if errors.IsKind(err, errors.KindNotFound) {
			return models.Table{}, errors.NotFound(fmt.Sprintf("Table %d is not checked in", tableNumber))
		}
		return models.Table{}, err
	}
	return table, nil
}

func (r *tableRepository) GetLatest(ctx context.Context, tableNumber int) (models.Table, error) {
	var table models.Table
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).
			Where("table_number = ?", tableNumber).
			Order("id DESC").
			First(&table).Error
	})
	if err != nil {
		if errors.IsKind(err, errors.KindNotFound) {
			return models.Table{}, errors.NotFound(fmt.Sprintf("Unknown table %d", tableNumber))
		}
		return models.Table{}, err
	}
	return table, nil
}

func (r *tableRepository) All(ctx context.Context) ([]models.Table, error) {
	tables := []models.Table{}
	err := withRetry(ctx, func() error {
		return r.db.WithContext(ctx).Order("id").Find(&tables).Error
	})
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *tableRepository) Checkout(ctx context.Context, tableNumber, total int) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Table{}).
		Where("table_number = ? AND total = ?", tableNumber, models.OpenTotal).
		Update("total", total)
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	return res.RowsAffected, nil
}
