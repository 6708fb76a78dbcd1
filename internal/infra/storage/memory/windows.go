package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/RMT-BookingService/internal/domain"
	windowRepo "github.com/m04kA/RMT-BookingService/internal/infra/storage/window"
)

// WindowRepository репозиторий окон недоступности в памяти
type WindowRepository struct {
	store *Store
}

// GetActiveWindows возвращает занимающие бронирования и блокировки вещи, отсортированные по дате начала
func (r *WindowRepository) GetActiveWindows(_ context.Context, itemID int64) ([]domain.UnavailabilityWindow, error) {
	windows := make([]domain.UnavailabilityWindow, 0)

	r.store.read(func() {
		for _, b := range r.store.bookings {
			if b.ItemID == itemID && b.IsOccupying() {
				windows = append(windows, b.Window())
			}
		}
		for _, block := range r.store.blocks {
			if block.ItemID == itemID {
				windows = append(windows, block.Window())
			}
		}
	})

	sort.Slice(windows, func(i, j int) bool {
		if !windows[i].Range.Start.Equal(windows[j].Range.Start) {
			return windows[i].Range.Start.Before(windows[j].Range.Start)
		}
		return windows[i].Range.End.Before(windows[j].Range.End)
	})
	return windows, nil
}

// CreateBlock создает блокировку дат владельцем
func (r *WindowRepository) CreateBlock(ctx context.Context, block *domain.OwnerBlock) (*domain.OwnerBlock, error) {
	err := r.store.write(ctx, func() error {
		for _, existing := range r.store.blocks {
			if existing.ItemID == block.ItemID && existing.Range.Overlaps(block.Range) {
				return fmt.Errorf("%w: CreateBlock - item_id=%d, range=%s", windowRepo.ErrDateRangeConflict, block.ItemID, block.Range)
			}
		}

		r.store.nextBlockID++
		block.ID = r.store.nextBlockID
		block.CreatedAt = r.store.now()
		r.store.blocks[block.ID] = *block
		return nil
	})
	if err != nil {
		return nil, err
	}
	return block, nil
}

// GetBlockByID получает блокировку по ID
func (r *WindowRepository) GetBlockByID(_ context.Context, id int64) (*domain.OwnerBlock, error) {
	var (
		block domain.OwnerBlock
		ok    bool
	)
	r.store.read(func() {
		block, ok = r.store.blocks[id]
	})
	if !ok {
		return nil, windowRepo.ErrBlockNotFound
	}
	return &block, nil
}

// GetBlocksByItem получает все блокировки вещи
func (r *WindowRepository) GetBlocksByItem(_ context.Context, itemID int64) ([]*domain.OwnerBlock, error) {
	blocks := make([]*domain.OwnerBlock, 0)
	r.store.read(func() {
		for _, b := range r.store.blocks {
			if b.ItemID == itemID {
				block := b
				blocks = append(blocks, &block)
			}
		}
	})

	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].Range.Start.Before(blocks[j].Range.Start)
	})
	return blocks, nil
}

// DeleteBlock удаляет блокировку
func (r *WindowRepository) DeleteBlock(ctx context.Context, id int64) error {
	return r.store.write(ctx, func() error {
		if _, ok := r.store.blocks[id]; !ok {
			return windowRepo.ErrBlockNotFound
		}
		delete(r.store.blocks, id)
		return nil
	})
}
