package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/mamadbah2/stockroom/internal/config"
	"github.com/mamadbah2/stockroom/internal/repository/file"
	"github.com/mamadbah2/stockroom/internal/repository/memory"
	"github.com/mamadbah2/stockroom/internal/repository/mongodb"
	"github.com/mamadbah2/stockroom/internal/repository/sheets"
	"github.com/mamadbah2/stockroom/internal/scheduler"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
	"github.com/mamadbah2/stockroom/internal/service/reporting"
)

// App holds the services shared by the HTTP server and the shell.
type App struct {
	Store     *inventory.Store
	Editor    *inventory.Editor
	Reporting *reporting.Service
	// Mirror is the secondary slot copied to by the mirror job, nil unless opened WithMirror.
	Mirror scheduler.MirrorSlot

	closers []func(context.Context) error
	logger  *zap.Logger
}

// Option configures Open.
type Option func(*openOptions)

type openOptions struct {
	mirror     bool
	sheetsOpts []option.ClientOption
}

// WithMirror opens the Sheets mirror slot used by the scheduled mirror job. It is only
// opened when a mirror schedule is configured and the primary slot is not Sheets.
func WithMirror(clientOpts ...option.ClientOption) Option {
	return func(o *openOptions) {
		o.mirror = true
		o.sheetsOpts = clientOpts
	}
}

// Open builds the slot selected by cfg, loads the inventory from it and wires the services.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{logger: logger}

	slot, err := a.openSlot(ctx, cfg)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	if o.mirror && cfg.Storage.Driver != config.DriverSheets && cfg.Schedule.MirrorCron != "" && cfg.Sheets.Enabled() {
		mirror, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, logger.Named("repo.sheets"), o.sheetsOpts...)
		if err != nil {
			_ = a.Close(ctx)
			return nil, fmt.Errorf("init sheets mirror: %w", err)
		}
		a.Mirror = mirror
	}

	logger.Info("storage opened", zap.String("driver", cfg.Storage.Driver), zap.Bool("mirror", a.Mirror != nil))

	a.Store = inventory.NewStore(slot, logger.Named("svc.inventory"))
	a.Store.Load(ctx)

	a.Editor = inventory.NewEditor(a.Store, logger.Named("svc.editor"))
	a.Reporting = reporting.NewService(a.Store, logger.Named("svc.reporting"))
	return a, nil
}

// Close releases connections held by the slots.
func (a *App) Close(ctx context.Context) error {
	var firstErr error
	for _, closeFn := range a.closers {
		if err := closeFn(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func (a *App) openSlot(ctx context.Context, cfg *config.Config) (inventory.Slot, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return memory.NewRepository(), nil
	case config.DriverFile:
		repo, err := file.NewRepository(cfg.Storage.FilePath, a.logger.Named("repo.file"))
		if err != nil {
			return nil, fmt.Errorf("init file slot: %w", err)
		}
		return repo, nil
	case config.DriverMongoDB:
		repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, cfg.Storage.Slot)
		if err != nil {
			return nil, fmt.Errorf("init mongodb slot: %w", err)
		}
		a.closers = append(a.closers, repo.Close)
		return repo, nil
	case config.DriverSheets:
		repo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, a.logger.Named("repo.sheets"))
		if err != nil {
			return nil, fmt.Errorf("init sheets slot: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
