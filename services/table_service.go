package services

import (
	"context"

	"github.com/wenrir/simple-resturant/common/errors"
	"github.com/wenrir/simple-resturant/common/logger"
	"github.com/wenrir/simple-resturant/models"
	"github.com/wenrir/simple-resturant/repository"

	"go.uber.org/zap"
)

// TableService owns the table lifecycle: the check-in occupancy guard and the
// checkout workflow.
type TableService struct {
	store repository.Store
}

// NewTableService creates a TableService on top of a store.
func NewTableService(store repository.Store) *TableService {
	return &TableService{store: store}
}

// CheckIn opens an occupied row for the table number. At most one occupied
// row may exist per number; a second check-in fails with a conflict.
func (s *TableService) CheckIn(ctx context.Context, tableNumber int) (models.Table, error) {
	table, err := s.store.Tables().Create(ctx, tableNumber)
	if err != nil {
		return models.Table{}, err
	}
	logger.Log.Info("Table checked in",
		zap.Int("table_number", tableNumber),
		zap.String("checked_in_time", table.CheckedInTime),
	)
	return table, nil
}

// Checkout closes the occupied row for the table number and returns the
// persisted total. The aggregate and the conditional update run in one
// transaction, so the stored total is exact as of the checkout instant.
//
// Calling checkout again on an already-closed table returns the total that
// was persisted the first time, without error and without recomputing.
func (s *TableService) Checkout(ctx context.Context, tableNumber int) (int, error) {
	var total int
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		table, err := tx.Tables().GetActive(ctx, tableNumber)
		if err != nil {
			if !errors.IsKind(err, errors.KindNotFound) {
				return err
			}
			// No occupied row. Either the table was already checked out, in
			// which case we report its persisted total, or it never existed.
			closed, err := tx.Tables().GetLatest(ctx, tableNumber)
			if err != nil {
				return err
			}
			total = closed.Total
			return nil
		}

		total, err = tx.Orders().Total(ctx, table.ID)
		if err != nil {
			return err
		}

		rows, err := tx.Tables().Checkout(ctx, tableNumber, total)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Lost a race against a concurrent checkout inside this
			// transaction window; report whatever was persisted.
			closed, err := tx.Tables().GetLatest(ctx, tableNumber)
			if err != nil {
				return err
			}
			total = closed.Total
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	logger.Log.Info("Table checked out",
		zap.Int("table_number", tableNumber),
		zap.Int("total", total),
	)
	return total, nil
}
