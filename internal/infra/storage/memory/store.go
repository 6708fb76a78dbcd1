package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/m04kA/RMT-BookingService/internal/domain"
)

type txKey struct{}

// Store хранилище в памяти для локального запуска и тестов.
// Транзакции выполняются строго по одной, при ошибке состояние откатывается к снимку.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	items    map[int64]domain.Item
	bookings map[int64]domain.Booking
	blocks   map[int64]domain.OwnerBlock

	nextBookingID int64
	nextBlockID   int64

	now func() time.Time
}

// NewStore создает пустое хранилище с заданными вещами
func NewStore(items ...domain.Item) *Store {
	s := &Store{
		items:    make(map[int64]domain.Item, len(items)),
		bookings: make(map[int64]domain.Booking),
		blocks:   make(map[int64]domain.OwnerBlock),
		now:      time.Now,
	}
	for _, item := range items {
		s.items[item.ID] = item
	}
	return s
}

// AddItem добавляет или заменяет вещь
func (s *Store) AddItem(item domain.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[item.ID] = item
}

// Items репозиторий вещей поверх хранилища
func (s *Store) Items() *ItemRepository {
	return &ItemRepository{store: s}
}

// Bookings репозиторий бронирований поверх хранилища
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

// Windows репозиторий окон недоступности поверх хранилища
func (s *Store) Windows() *WindowRepository {
	return &WindowRepository{store: s}
}

// TxManager менеджер транзакций поверх хранилища
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

type snapshot struct {
	bookings      map[int64]domain.Booking
	blocks        map[int64]domain.OwnerBlock
	nextBookingID int64
	nextBlockID   int64
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		bookings:      maps.Clone(s.bookings),
		blocks:        maps.Clone(s.blocks),
		nextBookingID: s.nextBookingID,
		nextBlockID:   s.nextBlockID,
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = snap.bookings
	s.blocks = snap.blocks
	s.nextBookingID = snap.nextBookingID
	s.nextBlockID = snap.nextBlockID
}

// write выполняет изменение данных.
// Вне транзакции изменение дожидается завершения текущей транзакции
func (s *Store) write(ctx context.Context, fn func() error) error {
	if !inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Store) read(fn func()) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// TxManager менеджер транзакций хранилища в памяти
type TxManager struct {
	store *Store
}

// Do выполняет функцию в транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoSerializable выполняет функцию в транзакции.
// Транзакции хранилища в памяти всегда последовательны
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoReadOnly выполняет функцию в транзакции только для чтения
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов работает в рамках внешней транзакции
	if inTx(ctx) {
		return fn(ctx)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	snap := m.store.snapshot()
	defer func() {
		if p := recover(); p != nil {
			m.store.restore(snap)
			panic(p)
		}
		if err != nil {
			m.store.restore(snap)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, true))
}
