package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/domain/lifecycle"
	"storefront/internal/errors"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	poolWatchInterval = 5 * time.Second
	poolWaitWarnAfter = 50 * time.Millisecond
)

// Params are the fx dependencies of New.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the database and ties its startup checks and shutdown to the fx lifecycle.
func New(params Params) (*gorm.DB, error) {
	db, err := Open(params.Config, params.Logger)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "unwrap sql.DB")
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "ping postgres")
			}

			if params.Config.Database != nil && params.Config.Database.AutoMigrate {
				if err := Migrate(startCtx, db); err != nil {
					return err
				}
				params.Logger.Info("schema migrated")
			}

			go watchPool(watchCtx, params.Logger, sqlDB, poolWatchInterval)

			return nil
		},
		OnStop: func(_ context.Context) error {
			stopWatch()

			return sqlDB.Close()
		},
	})

	return db, nil
}

// Open connects through go-lib and applies the session settings shared by every binary.
func Open(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	if cfg.Postgres == nil {
		return nil, errors.New("postgres configuration is missing")
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "connect postgres")
	}

	return Configure(db, logger, cfg.Env.Debug), nil
}

// Configure applies the storefront session settings to a connection.
// Explicit transactions go through TransactionManager, so GORM's implicit
// per-statement transaction is disabled.
func Configure(db *gorm.DB, logger *slog.Logger, debug bool) *gorm.DB {
	db.Config.TranslateError = true

	return db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 NewGormLogger(logger, debug),
	})
}

// watchPool logs when checkouts wait for a free connection, which is the
// first sign the pool is undersized for the current load.
func watchPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	last := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		now := sqlDB.Stats()
		waits, waited := now.WaitCount-last.WaitCount, now.WaitDuration-last.WaitDuration
		last = now
		if waits <= 0 {
			continue
		}

		level := slog.LevelDebug
		if waited >= poolWaitWarnAfter {
			level = slog.LevelWarn
		}
		logger.LogAttrs(ctx, level, "connection pool waits",
			slog.Int64("waits", waits),
			slog.Duration("waited", waited),
			slog.Int("in_use", now.InUse),
			slog.Int("idle", now.Idle),
			slog.Int("max_open", now.MaxOpenConnections),
		)
	}
}
