package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"accountd/config"
	"accountd/internal/domain/lifecycle"
	"accountd/internal/errors"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// Pool-monitor defaults, overridable through config. Login bursts are the
// only load the account store sees, so a short interval and a tight wait
// threshold catch contention early.
const (
	defaultPoolMonitorInterval = 5 * time.Second
	defaultPoolWarnThreshold   = 50 * time.Millisecond
)

// monitorSettings resolves the pool-monitor knobs from config.
func monitorSettings(cfg *config.Config) (interval, warnThreshold time.Duration) {
	interval = defaultPoolMonitorInterval
	warnThreshold = defaultPoolWarnThreshold

	if cfg != nil && cfg.Database != nil {
		if cfg.Database.PoolMonitorInterval > 0 {
			interval = cfg.Database.PoolMonitorInterval
		}
		if cfg.Database.PoolWarnThreshold > 0 {
			warnThreshold = cfg.Database.PoolWarnThreshold
		}
	}

	return interval, warnThreshold
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates PostgreSQL client mapping
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	db = db.Session(&gorm.Session{
		// Disable GORM's per-statement implicit transaction.
		// We keep explicit transactions via txManager.Execute for multi-step atomic operations.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())

	// Add lifecycle management
	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}

			interval, warnThreshold := monitorSettings(params.Config)
			go monitorDBPool(monitorCtx, params.Logger, sqlDB, interval, warnThreshold)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelMonitor()

			return sqlDB.Close()
		},
	})

	return db, nil
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval, warnThreshold time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration

			if waitDelta > 0 {
				attrs := []slog.Attr{
					slog.Int64("waitCountDelta", waitDelta),
					slog.Duration("waitDurationDelta", waitDurationDelta),
					slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
					slog.Int("maxOpenConns", cur.MaxOpenConnections),
					slog.Int("openConns", cur.OpenConnections),
					slog.Int("inUseConns", cur.InUse),
					slog.Int("idleConns", cur.Idle),
					slog.Int64("waitCountTotal", cur.WaitCount),
					slog.Duration("waitDurationTotal", cur.WaitDuration),
				}
				if waitDurationDelta >= warnThreshold {
					logger.LogAttrs(ctx, slog.LevelWarn, "Account store pool wait detected", attrs...)
				} else {
					logger.LogAttrs(ctx, slog.LevelDebug, "Account store pool wait observed", attrs...)
				}
			}

			prev = cur
		}
	}
}
