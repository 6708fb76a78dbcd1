package jobs

import (
	"context"
	"time"
)

// defaultJobTimeout ограничение времени одного запуска задачи
const defaultJobTimeout = time.Minute

// JobRunner фоновые задачи сервиса бронирований
type JobRunner struct {
	bookingRepo BookingRepository
	publisher   EventPublisher
	pendingTTL  time.Duration
	timeout     time.Duration
	now         func() time.Time
	logger      Logger
}

// NewJobRunner создает исполнитель фоновых задач.
// pendingTTL - сколько бронирование может ждать подтверждения владельцем
func NewJobRunner(bookingRepo BookingRepository, publisher EventPublisher, pendingTTL time.Duration, logger Logger) *JobRunner {
	return &JobRunner{
		bookingRepo: bookingRepo,
		publisher:   publisher,
		pendingTTL:  pendingTTL,
		timeout:     defaultJobTimeout,
		now:         time.Now,
		logger:      logger,
	}
}

// runWithRecovery выполняет задачу с таймаутом и перехватом паники
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			jr.logger.Error("Job %s panicked: %v", jobName, r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
	defer cancel()

	jr.logger.Info("Starting job %s", jobName)
	started := jr.now()
	jobFunc(ctx)
	jr.logger.Info("Job %s completed in %s", jobName, jr.now().Sub(started))
}
