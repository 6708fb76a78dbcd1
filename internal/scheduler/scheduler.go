package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// JobRunner задачи, которые запускает планировщик
type JobRunner interface {
	ExpirePendingBookings()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config расписания задач в формате cron с секундами
type Config struct {
	ExpirePendingBookings string
}

// Scheduler управляет запуском фоновых задач по расписанию
type Scheduler struct {
	cron   *cron.Cron
	jobs   JobRunner
	logger Logger
}

// NewScheduler создает планировщик и регистрирует задачи.
// Пустое расписание отключает задачу
func NewScheduler(jobRunner JobRunner, cfg Config, logger Logger) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron:   c,
		jobs:   jobRunner,
		logger: logger,
	}

	if err := s.registerJobs(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs регистрирует все задачи
func (s *Scheduler) registerJobs(cfg Config) error {
	if cfg.ExpirePendingBookings != "" {
		if _, err := s.cron.AddFunc(cfg.ExpirePendingBookings, s.jobs.ExpirePendingBookings); err != nil {
			return fmt.Errorf("failed to register ExpirePendingBookings job (%q): %w", cfg.ExpirePendingBookings, err)
		}
	}

	s.logger.Info("Registered %d cron jobs", len(s.cron.Entries()))
	return nil
}

// Start запускает планировщик
func (s *Scheduler) Start() {
	s.logger.Info("Starting cron scheduler...")
	s.cron.Start()
}

// Stop останавливает планировщик и дожидается завершения запущенных задач
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron scheduler stopped")
}

// HasJobs возвращает true, если зарегистрирована хотя бы одна задача
func (s *Scheduler) HasJobs() bool {
	return len(s.cron.Entries()) > 0
}
