package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"recordhub/internal/app"
	"recordhub/internal/config"
	"recordhub/internal/logger"
	"recordhub/internal/platform/database"
	rabbitmqClient "recordhub/internal/platform/rabbitmq"
	redisClient "recordhub/internal/platform/redis"
	"recordhub/internal/repository"
	"recordhub/internal/worker"
)

type App struct {
	Config         *config.Config
	Logger         *zap.Logger
	DB             *gorm.DB
	Redis          *redis.Client
	MQConn         *amqp.Connection
	Publisher      app.EventPublisher
	ActivityWorker *worker.ActivityWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	log := logger.New(cfg.Log.Level).With(
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	a := &App{Config: cfg, Logger: log, StartedAt: time.Now()}

	a.DB, err = database.New(ctx, cfg)
	if err != nil {
		return nil, a.abort(err)
	}

	a.Redis, err = redisClient.New(ctx, cfg.Redis)
	if err != nil {
		return nil, a.abort(err)
	}

	a.MQConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ)
	if err != nil {
		return nil, a.abort(err)
	}
	a.Publisher = rabbitmqClient.NewActivityPublisher(a.MQConn, cfg.RabbitMQ.ActivityQueue)

	activityRepo := repository.NewActivityRepository(a.DB)
	a.ActivityWorker = worker.NewActivityWorker(a.MQConn, activityRepo, cfg.RabbitMQ.ActivityQueue, log)
	if err := a.ActivityWorker.Start(ctx); err != nil {
		return nil, a.abort(fmt.Errorf("start activity worker failed: %w", err))
	}

	log.Info("dependencies ready",
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("redis", cfg.Redis.Addr),
		zap.String("activity_queue", cfg.RabbitMQ.ActivityQueue),
	)
	return a, nil
}

// RequestTimeout bounds every service call made on behalf of a request.
func (a *App) RequestTimeout() time.Duration {
	return time.Duration(a.Config.App.RequestTimeoutSeconds) * time.Second
}

func (a *App) abort(err error) error {
	_ = a.Close()
	return err
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.ActivityWorker != nil {
		a.ActivityWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	return closeErr
}
