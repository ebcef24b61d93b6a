package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/wenrir/simple-resturant/common/errors"
	"github.com/wenrir/simple-resturant/models"
)

// MemoryStore is an in-memory Store implementation for tests. It mirrors the
// gorm-backed behavior, including the active-table scoping rules, without a
// database.
type MemoryStore struct {
	mu     sync.Mutex
	tables []models.Table
	items  []models.Item
	orders []models.Order
	nextID uint

	// FailNext, when set, makes the next repository call return this error.
	FailNext error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Tables() TableRepository { return (*memoryTables)(s) }
func (s *MemoryStore) Items() ItemRepository   { return (*memoryItems)(s) }
func (s *MemoryStore) Orders() OrderRepository { return (*memoryOrders)(s) }

// Transaction runs fn against the same store. The single mutex already makes
// each repository call atomic, which is all the tests rely on.
func (s *MemoryStore) Transaction(ctx context.Context, fn func(Store) error) error {
	return fn(s)
}

func (s *MemoryStore) takeErr() error {
	err := s.FailNext
	s.FailNext = nil
	return err
}

func (s *MemoryStore) id() uint {
	id := s.nextID
	s.nextID++
	return id
}

func (s *MemoryStore) activeTable(id uint) bool {
	for _, t := range s.tables {
		if t.ID == id && t.Occupied() {
			return true
		}
	}
	return false
}

type memoryTables MemoryStore

func (m *memoryTables) Create(ctx context.Context, tableNumber int) (models.Table, error) {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return models.Table{}, err
	}
	for _, t := range s.tables {
		if t.TableNumber == tableNumber && t.Occupied() {
			return models.Table{}, errors.Conflict(fmt.Sprintf("Table %d is already checked in", tableNumber))
		}
	}
	table := models.Table{
		ID:            s.id(),
		TableNumber:   tableNumber,
		CheckedInTime: models.Timestamp(),
		Total:         models.OpenTotal,
	}
	s.tables = append(s.tables, table)
	return table, nil
}

func (m *memoryTables) GetActive(ctx context.Context, tableNumber int) (models.Table, error) {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return models.Table{}, err
	}
	for _, t := range s.tables {
		if t.TableNumber == tableNumber && t.Occupied() {
			return t, nil
		}
	}
	return models.Table{}, errors.NotFound(fmt.Sprintf("Table %d is not checked in", tableNumber))
}

func (m *memoryTables) GetLatest(ctx context.Context, tableNumber int) (models.Table, error) {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return models.Table{}, err
	}
	for i := len(s.tables) - 1; i >= 0; i-- {
		if s.tables[i].TableNumber == tableNumber {
			return s.tables[i], nil
		}
	}
	return models.Table{}, errors.NotFound(fmt.Sprintf("Unknown table %d", tableNumber))
}

func (m *memoryTables) All(ctx context.Context) ([]models.Table, error) {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return nil, err
	}
	out := make([]models.Table, len(s.tables))
	copy(out, s.tables)
	return out, nil
}

func (m *memoryTables) Checkout(ctx context.Context, tableNumber, total int) (int64, error) {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return 0, err
	}
	for i := range s.tables {
		if s.tables[i].TableNumber == tableNumber && s.tables[i].Occupied() {
			s.tables[i].Total = total
			return 1, nil
		}
	}
	return 0, nil
}

type memoryItems MemoryStore

func (m *memoryItems) Create(ctx context.Context, item *models.Item) error {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return err
	}
	item.ID = s.id()
	s.items = append(s.items, *item)
	return nil
}

func (m *memoryItems) Get(ctx context.Context, id uint) (models.Item, error) {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return models.Item{}, err
	}
	for _, it := range s.items {
		if it.ID == id {
			return it, nil
		}
	}
	return models.Item{}, errors.NotFound(fmt.Sprintf("Unable to find item %d", id))
}

func (m *memoryItems) All(ctx context.Context) ([]models.Item, error) {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return nil, err
	}
	out := make([]models.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

type memoryOrders MemoryStore

func (m *memoryOrders) Create(ctx context.Context, order *models.Order) error {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return err
	}
	order.ID = s.id()
	if order.PublishedAt == "" {
		order.PublishedAt = models.Timestamp()
	}
	s.orders = append(s.orders, *order)
	return nil
}

func (m *memoryOrders) Find(ctx context.Context, orderID uint) ([]models.Order, error) {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return nil, err
	}
	out := []models.Order{}
	for _, o := range s.orders {
		if o.ID == orderID && s.activeTable(o.TableID) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memoryOrders) FindForTable(ctx context.Context, tableID uint) ([]models.Order, error) {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return nil, err
	}
	out := []models.Order{}
	if !s.activeTable(tableID) {
		return out, nil
	}
	for _, o := range s.orders {
		if o.TableID == tableID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memoryOrders) FindItemsForTable(ctx context.Context, tableID, itemID uint) ([]models.Item, error) {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return nil, err
	}
	out := []models.Item{}
	if !s.activeTable(tableID) {
		return out, nil
	}
	seen := map[uint]bool{}
	for _, o := range s.orders {
		if o.TableID != tableID || o.ItemID != itemID || seen[o.ItemID] {
			continue
		}
		for _, it := range s.items {
			if it.ID == o.ItemID {
				out = append(out, it)
				seen[o.ItemID] = true
			}
		}
	}
	return out, nil
}

func (m *memoryOrders) DeleteTableOrder(ctx context.Context, tableID, orderID uint) error {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return err
	}
	for i, o := range s.orders {
		if o.ID == orderID && o.TableID == tableID {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Unable to find order id!")
}

func (m *memoryOrders) Delete(ctx context.Context, orderID uint) error {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return err
	}
	for i, o := range s.orders {
		if o.ID == orderID {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return nil
		}
	}
	return errors.NotFound("Unable to find order id!")
}

func (m *memoryOrders) All(ctx context.Context) ([]models.Order, error) {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return nil, err
	}
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

func (m *memoryOrders) Total(ctx context.Context, tableID uint) (int, error) {
	s := (*MemoryStore)(m)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeErr(); err != nil {
		return 0, err
	}
	total := 0
	for _, o := range s.orders {
		if o.TableID != tableID {
			continue
		}
		for _, it := range s.items {
			if it.ID == o.ItemID {
				total += it.Price * o.Quantity
			}
		}
	}
	return total, nil
}
