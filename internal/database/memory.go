package database

import (
	"context"
	"sync"

	"github.com/Renal37/dress-settlement/internal/models"
)

// Memory is an in-process order store. Writes to one order are serialized by a
// per-order lock; orders with different ids never wait on each other.
type Memory struct {
	data   sync.RWMutex
	orders map[string]models.Order

	registry sync.Mutex
	locks    map[string]*orderLock
}

type orderLock struct {
	sync.Mutex
	refs int
}

func NewMemory() *Memory {
	return &Memory{
		orders: make(map[string]models.Order),
		locks:  make(map[string]*orderLock),
	}
}

// lockOrder acquires the lock of a single order and returns its release func.
// Locks are dropped from the registry once nobody holds or waits for them.
func (m *Memory) lockOrder(orderID string) func() {
	m.registry.Lock()
	l, ok := m.locks[orderID]
	if !ok {
		l = &orderLock{}
		m.locks[orderID] = l
	}
	l.refs++
	m.registry.Unlock()

	l.Lock()

	return func() {
		l.Unlock()

		m.registry.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, orderID)
		}
		m.registry.Unlock()
	}
}

func (m *Memory) GetOrder(_ context.Context, orderID string) (models.Order, error) {
	m.data.RLock()
	order, ok := m.orders[orderID]
	m.data.RUnlock()

	if !ok {
		return models.Order{}, ErrOrderNotFound
	}

	return order.Clone(), nil
}

func (m *Memory) InsertOrderIfAbsent(_ context.Context, order models.Order) (bool, error) {
	unlock := m.lockOrder(order.ID)
	defer unlock()

	m.data.Lock()
	defer m.data.Unlock()

	if _, ok := m.orders[order.ID]; ok {
		return false, nil
	}

	m.orders[order.ID] = order.Clone()
	return true, nil
}

func (m *Memory) UpdateOrder(_ context.Context, orderID string, mutate func(order *models.Order) error) (models.Order, error) {
	unlock := m.lockOrder(orderID)
	defer unlock()

	m.data.RLock()
	current, ok := m.orders[orderID]
	m.data.RUnlock()

	if !ok {
		return models.Order{}, ErrOrderNotFound
	}

	// The mutator works on a copy so a failed mutation leaves no trace.
	next := current.Clone()
	if err := mutate(&next); err != nil {
		return models.Order{}, err
	}
	next.ID = current.ID

	m.data.Lock()
	m.orders[orderID] = next
	m.data.Unlock()

	return next.Clone(), nil
}

// Close is a no-op.
func (m *Memory) Close() {}
