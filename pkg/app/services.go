package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/saborexpress/config"
	"github.com/shashiranjanraj/saborexpress/pkg/auth"
	"github.com/shashiranjanraj/saborexpress/pkg/database"
	"github.com/shashiranjanraj/saborexpress/pkg/kv"
	"github.com/shashiranjanraj/saborexpress/pkg/logger"
	"github.com/shashiranjanraj/saborexpress/pkg/storage"
	"github.com/shashiranjanraj/saborexpress/pkg/telemetry"
	"github.com/shashiranjanraj/saborexpress/pkg/workerpool"
)

const serviceName = "sabor-express"

// Services are the process-wide dependencies handed to route callbacks.
type Services struct {
	KV     kv.Store
	Signer *auth.Signer
	Disk   storage.Disk
	Pool   *workerpool.Pool

	closers []func()
}

// Close releases everything Boot opened, in reverse order.
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

func (s *Services) onClose(fn func()) { s.closers = append(s.closers, fn) }

// ErrDefaultAppKey is returned by Boot in production while APP_KEY is unset.
var ErrDefaultAppKey = errors.New("app: APP_KEY must be set in production")

// Boot loads configuration and connects the slot store, cookie signer,
// storage disk, worker pool and the optional log and trace sinks. On error
// everything opened so far is released.
func Boot(ctx context.Context) (*Services, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("app: config: %w", err)
	}
	if config.IsProduction() && config.AppKeyIsDefault() {
		return nil, ErrDefaultAppKey
	}

	s := &Services{}
	if err := s.open(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Services) open(ctx context.Context) error {
	if uri := config.LogMongoURI(); uri != "" {
		closeMongo, err := logger.AttachMongo(uri, config.LogMongoDatabase(), config.LogMongoCollection())
		if err != nil {
			logger.Warn("app: mongo log sink disabled", "error", err)
		} else {
			s.onClose(closeMongo)
		}
	}

	shutdownTracing, err := telemetry.Init(ctx, serviceName, config.OTLPEndpoint())
	if err != nil {
		return err
	}
	s.onClose(func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("app: flush traces", "error", err)
		}
	})

	if s.KV, err = connectKV(ctx, s); err != nil {
		return err
	}

	if s.Signer, err = auth.NewSigner(config.AppKey(), config.SessionTTL()); err != nil {
		return fmt.Errorf("app: session signer: %w", err)
	}

	if err = storage.Connect(ctx); err != nil {
		return err
	}
	s.Disk = storage.Default()

	s.Pool = workerpool.New(config.WorkerPoolSize())
	s.onClose(s.Pool.Shutdown)
	return nil
}

func connectKV(ctx context.Context, svc *Services) (kv.Store, error) {
	driver := config.KVDriver()
	logger.Info("app: slot store", "driver", driver)

	switch driver {
	case "redis":
		client, err := kv.ConnectRedis(ctx, config.RedisAddr(), config.RedisPassword())
		if err != nil {
			return nil, err
		}
		svc.onClose(func() { _ = client.Close() })
		return kv.NewRedis(client, config.SessionTTL()), nil

	case "database":
		db, err := database.Open(config.DatabaseDriver(), config.DatabaseDSN())
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			svc.onClose(func() { _ = sqlDB.Close() })
		}
		store, err := kv.NewDatabase(db)
		if err != nil {
			return nil, err
		}
		return store, nil

	default:
		return kv.NewMemory(), nil
	}
}
