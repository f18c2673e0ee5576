package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
)

const jobTimeout = 2 * time.Minute

// ItemSource exposes the current inventory list.
type ItemSource interface {
	Items() []models.StockItem
}

// MirrorSlot receives full copies of the inventory list.
type MirrorSlot interface {
	Write(ctx context.Context, items []models.StockItem) error
}

// Summarizer produces the stock summary to push.
type Summarizer interface {
	Summarize() reporting.Summary
}

// Notifier delivers a text message.
type Notifier interface {
	SendText(ctx context.Context, text string) error
}

// Scheduler runs the mirror and summary jobs on their cron schedules.
type Scheduler struct {
	cron     *cron.Cron
	cfg      config.ScheduleConfig
	source   ItemSource
	mirror   MirrorSlot
	summary  Summarizer
	notifier Notifier
	logger   *zap.Logger
}

// NewScheduler creates a scheduler in cfg.Timezone. mirror and notifier may be nil, which
// disables the corresponding job.
func NewScheduler(cfg config.ScheduleConfig, source ItemSource, mirror MirrorSlot, summary Summarizer, notifier Notifier, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		cfg:      cfg,
		source:   source,
		mirror:   mirror,
		summary:  summary,
		notifier: notifier,
		logger:   logger,
	}, nil
}

// Start registers the configured jobs and starts the cron runner.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler")

	if s.cfg.MirrorCron != "" && s.mirror != nil {
		if _, err := s.cron.AddFunc(s.cfg.MirrorCron, s.mirrorInventory); err != nil {
			return fmt.Errorf("schedule mirror job: %w", err)
		}
		s.logger.Info("mirror job scheduled", zap.String("cron", s.cfg.MirrorCron))
	}

	if s.cfg.SummaryCron != "" && s.notifier != nil && s.summary != nil {
		if _, err := s.cron.AddFunc(s.cfg.SummaryCron, s.sendSummary); err != nil {
			return fmt.Errorf("schedule summary job: %w", err)
		}
		s.logger.Info("summary job scheduled", zap.String("cron", s.cfg.SummaryCron))
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// Jobs reports how many jobs are registered.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) mirrorInventory() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	items := s.source.Items()
	if err := s.mirror.Write(ctx, items); err != nil {
		s.logger.Error("failed to mirror inventory", zap.Error(err))
		return
	}
	s.logger.Info("inventory mirrored", zap.Int("items", len(items)))
}

func (s *Scheduler) sendSummary() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	text := reporting.Format(s.summary.Summarize())
	if err := s.notifier.SendText(ctx, text); err != nil {
		s.logger.Error("failed to send stock summary", zap.Error(err))
		return
	}
	s.logger.Info("stock summary sent")
}
