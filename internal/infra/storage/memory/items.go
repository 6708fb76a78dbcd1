package memory

import (
	"context"

	"github.com/m04kA/RMT-BookingService/internal/domain"
	itemRepo "github.com/m04kA/RMT-BookingService/internal/infra/storage/item"
)

// ItemRepository репозиторий вещей в памяти
type ItemRepository struct {
	store *Store
}

// GetByID получает вещь по ID
func (r *ItemRepository) GetByID(_ context.Context, id int64) (*domain.Item, error) {
	var (
		item domain.Item
		ok   bool
	)
	r.store.read(func() {
		item, ok = r.store.items[id]
	})
	if !ok {
		return nil, itemRepo.ErrItemNotFound
	}
	return &item, nil
}
