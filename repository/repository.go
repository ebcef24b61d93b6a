package repository

import (
	"context"
	stderrors "errors"
	"net"
	"strings"
	"time"

	"github.com/wenrir/simple-resturant/common/errors"
	"github.com/wenrir/simple-resturant/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// TableRepository owns the table lifecycle rows.
type TableRepository interface {
	// Create opens an occupied row for the given table number. It fails with
	// a conflict if an occupied row for that number already exists.
	Create(ctx context.Context, tableNumber int) (models.Table, error)
	// GetActive returns the occupied row for the number. Checked-out tables
	// are not retrievable through this lookup.
	GetActive(ctx context.Context, tableNumber int) (models.Table, error)
	// GetLatest returns the most recent row for the number regardless of
	// occupancy state.
	GetLatest(ctx context.Context, tableNumber int) (models.Table, error)
	// All returns every row regardless of occupancy state.
	All(ctx context.Context) ([]models.Table, error)
	// Checkout conditionally closes the occupied row for the number and
	// reports how many rows matched.
	Checkout(ctx context.Context, tableNumber, total int) (int64, error)
}

// ItemRepository owns the immutable menu rows.
type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) error
	Get(ctx context.Context, id uint) (models.Item, error)
	All(ctx context.Context) ([]models.Item, error)
}

// OrderRepository owns the order line rows. Read operations are scoped to
// orders belonging to currently occupied tables unless stated otherwise.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	// Find returns the order by id, scoped to occupied tables. An id that
	// exists but belongs to a checked-out table yields an empty slice.
	Find(ctx context.Context, orderID uint) ([]models.Order, error)
	// FindForTable returns all orders for one occupied table.
	FindForTable(ctx context.Context, tableID uint) ([]models.Order, error)
	// FindItemsForTable returns the items referenced by an occupied table's
	// orders, filtered to one item id.
	FindItemsForTable(ctx context.Context, tableID, itemID uint) ([]models.Item, error)
	// DeleteTableOrder deletes the order only if it belongs to the table.
	DeleteTableOrder(ctx context.Context, tableID, orderID uint) error
	// Delete removes the order by id, regardless of table.
	Delete(ctx context.Context, orderID uint) error
	All(ctx context.Context) ([]models.Order, error)
	// Total computes sum(item price * quantity) over the table's orders in a
	// single joined aggregate. A table with no orders totals 0.
	Total(ctx context.Context, tableID uint) (int, error)
}

// Store bundles the repositories behind one handle and exposes the
// transaction boundary used by multi-step features.
type Store interface {
	Tables() TableRepository
	Items() ItemRepository
	Orders() OrderRepository
	// Transaction runs fn against a store whose repositories share one
	// database transaction. fn returning an error rolls the transaction back.
	Transaction(ctx context.Context, fn func(Store) error) error
}

type gormStore struct {
	db     *gorm.DB
	tables TableRepository
	items  ItemRepository
	orders OrderRepository
}

// NewStore builds the production store on top of a gorm handle.
func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:     db,
		tables: &tableRepository{db: db},
		items:  &itemRepository{db: db},
		orders: &orderRepository{db: db},
	}
}

func (s *gormStore) Tables() TableRepository { return s.tables }
func (s *gormStore) Items() ItemRepository   { return s.items }
func (s *gormStore) Orders() OrderRepository { return s.orders }

func (s *gormStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// translate maps storage errors onto the application taxonomy. Both the
// postgres and sqlite drivers are recognized so the same repositories back
// production and the test suites.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*errors.Error); ok {
		return appErr
	}
	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.NotFound("Record not found")
	}
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
		return errors.Aborted(err)
	}

	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return errors.Conflict("Record already exists")
		case strings.HasPrefix(pgErr.Code, "08"):
			return errors.Unavailable(err)
		}
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return errors.Conflict("Record already exists")
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return errors.Unavailable(err)
	}
	return errors.Internal(err)
}

const (
	readAttempts = 3
	readBackoff  = 50 * time.Millisecond
)

// withRetry re-runs an idempotent read when storage is transiently
// unavailable, with bounded attempts. Writes never go through here.
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt < readAttempts; attempt++ {
		if err = translate(fn()); err == nil {
			return nil
		}
		if !errors.IsKind(err, errors.KindUnavailable) {
			return err
		}
		select {
		case <-time.After(readBackoff):
		case <-ctx.Done():
			return errors.Aborted(ctx.Err())
		}
	}
	return err
}
