package blocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/RMT-BookingService/internal/domain"
	itemRepo "github.com/m04kA/RMT-BookingService/internal/infra/storage/item"
	windowRepo "github.com/m04kA/RMT-BookingService/internal/infra/storage/window"
	"github.com/m04kA/RMT-BookingService/internal/service/blocks/models"
	"github.com/m04kA/RMT-BookingService/internal/service/quote"
)

// Service сервис календаря вещи и блокировок дат владельцем
type Service struct {
	itemRepo   ItemRepository
	windowRepo WindowRepository
	validator  RangeValidator
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(
	itemRepo ItemRepository,
	windowRepo WindowRepository,
	validator RangeValidator,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		itemRepo:   itemRepo,
		windowRepo: windowRepo,
		validator:  validator,
		txManager:  txManager,
		logger:     logger,
	}
}

// ListWindows возвращает публичный календарь недоступности вещи
func (s *Service) ListWindows(ctx context.Context, itemID int64) (*models.AvailabilityResponse, error) {
	s.logger.Info("ListWindows: fetching windows for item=%d", itemID)

	item, err := s.getItem(ctx, "ListWindows", itemID)
	if err != nil {
		return nil, err
	}

	windows, err := s.windowRepo.GetActiveWindows(ctx, itemID)
	if err != nil {
		s.logger.Error("ListWindows: repository error for item=%d: %v", itemID, err)
		return nil, fmt.Errorf("%w: ListWindows - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListWindows: item=%d has %d windows", itemID, len(windows))
	return models.FromDomainWindows(item, windows), nil
}

// CreateBlock блокирует даты вещи.
// Доступно только владельцу; период проверяется как при расчете стоимости
// и не должен пересекаться с бронированиями и другими блокировками
func (s *Service) CreateBlock(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("CreateBlock: item=%d, range=[%s, %s), reason=%s by user=%d",
		req.ItemID, req.StartDate, req.EndDate, req.Reason, req.UserID)

	// 1. Валидируем причину и заметку
	reason := domain.WindowReason(req.Reason)
	if !reason.IsOwnerManaged() {
		s.logger.Warn("CreateBlock: invalid reason=%s", req.Reason)
		return nil, fmt.Errorf("%w: %q", ErrInvalidReason, req.Reason)
	}

	note, err := normalizeNote(req.Note)
	if err != nil {
		s.logger.Warn("CreateBlock: %v", err)
		return nil, err
	}

	// 2. Валидируем период
	dateRange, err := s.validator.ValidateRange(quote.RangeRequest{StartDate: req.StartDate, EndDate: req.EndDate})
	if err != nil {
		s.logger.Warn("CreateBlock: invalid range: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}

	var created *domain.OwnerBlock

	// 3. Проверка пересечений и вставка в одной транзакции
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		item, err := s.getItem(txCtx, "CreateBlock", req.ItemID)
		if err != nil {
			return err
		}

		if item.OwnerID != req.UserID {
			s.logger.Warn("CreateBlock: user=%d is not the owner of item=%d", req.UserID, req.ItemID)
			return ErrAccessDenied
		}

		windows, err := s.windowRepo.GetActiveWindows(txCtx, req.ItemID)
		if err != nil {
			s.logger.Error("CreateBlock: failed to get windows for item=%d: %v", req.ItemID, err)
			return fmt.Errorf("%w: CreateBlock - repository error: %w", ErrInternal, err)
		}

		for _, w := range windows {
			if w.Range.Overlaps(dateRange) {
				s.logger.Warn("CreateBlock: range %s overlaps %s window %s", dateRange, w.Reason, w.Range)
				return fmt.Errorf("%w: %s %s", ErrDateRangeConflict, w.Reason, w.Range)
			}
		}

		created, err = s.windowRepo.CreateBlock(txCtx, &domain.OwnerBlock{
			ItemID:  req.ItemID,
			OwnerID: req.UserID,
			Range:   dateRange,
			Reason:  reason,
			Note:    note,
		})
		if errors.Is(err, windowRepo.ErrDateRangeConflict) {
			s.logger.Warn("CreateBlock: storage rejected overlapping block for item=%d: %v", req.ItemID, err)
			return fmt.Errorf("%w: %v", ErrDateRangeConflict, err)
		}
		if err != nil {
			s.logger.Error("CreateBlock: failed to create block: %v", err)
			return fmt.Errorf("%w: CreateBlock - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateBlock: created block id=%d for item=%d", created.ID, created.ItemID)
	return models.FromDomainBlock(created), nil
}

// DeleteBlock снимает блокировку дат.
// Доступно только владельцу вещи
func (s *Service) DeleteBlock(ctx context.Context, userID, itemID, blockID int64) error {
	s.logger.Info("DeleteBlock: deleting block id=%d of item=%d by user=%d", blockID, itemID, userID)

	block, err := s.windowRepo.GetBlockByID(ctx, blockID)
	if err != nil {
		if errors.Is(err, windowRepo.ErrBlockNotFound) {
			s.logger.Warn("DeleteBlock: block id=%d not found", blockID)
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlock: repository error for block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: DeleteBlock - repository error: %v", ErrInternal, err)
	}

	if block.ItemID != itemID {
		s.logger.Warn("DeleteBlock: block id=%d belongs to item=%d, not %d", blockID, block.ItemID, itemID)
		return ErrBlockNotFound
	}

	if block.OwnerID != userID {
		s.logger.Warn("DeleteBlock: user=%d is not the owner of block id=%d", userID, blockID)
		return ErrAccessDenied
	}

	if err := s.windowRepo.DeleteBlock(ctx, blockID); err != nil {
		if errors.Is(err, windowRepo.ErrBlockNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlock: repository error for block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: DeleteBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlock: block id=%d deleted", blockID)
	return nil
}

func (s *Service) getItem(ctx context.Context, op string, itemID int64) (*domain.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, itemRepo.ErrItemNotFound) {
			s.logger.Warn("%s: item id=%d not found", op, itemID)
			return nil, ErrItemNotFound
		}
		s.logger.Error("%s: failed to get item id=%d: %v", op, itemID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return item, nil
}

func normalizeNote(note *string) (*string, error) {
	if note == nil {
		return nil, nil
	}

	trimmed := strings.TrimSpace(*note)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > domain.MaxBlockNoteLength {
		return nil, fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxBlockNoteLength)
	}
	return &trimmed, nil
}
