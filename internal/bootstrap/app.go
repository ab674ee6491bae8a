package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ndrewpacheco/warbler/internal/app"
	"github.com/ndrewpacheco/warbler/internal/config"
	"github.com/ndrewpacheco/warbler/internal/logger"
	"github.com/ndrewpacheco/warbler/internal/platform/database"
	rabbitmqClient "github.com/ndrewpacheco/warbler/internal/platform/rabbitmq"
	redisClient "github.com/ndrewpacheco/warbler/internal/platform/redis"
	"github.com/ndrewpacheco/warbler/internal/repository"
	"github.com/ndrewpacheco/warbler/internal/worker"
)

// App holds the process-wide clients. Redis and RabbitMQ are nil when
// disabled in config.
type App struct {
	Config *config.Config
	Log    *logrus.Logger
	DB     *gorm.DB
	Redis  *redis.Client
	MQConn *amqp.Connection

	ActivityWorker    *worker.ActivityWorker
	ActivityPublisher *rabbitmqClient.ActivityPublisher

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	log := logger.New(cfg.Log)

	db, err := database.New(ctx, cfg.Database.Driver, cfg.DSN(), log)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		closeDB(db)
		return nil, err
	}

	a := &App{
		Config:    cfg,
		Log:       log,
		DB:        db,
		StartedAt: time.Now(),
	}

	if cfg.Redis.Enabled {
		a.Redis, err = redisClient.New(ctx, cfg.Redis)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
	}

	if cfg.RabbitMQ.Enabled {
		a.MQConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.ActivityQueue)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.ActivityPublisher = rabbitmqClient.NewActivityPublisher(a.MQConn, cfg.RabbitMQ.ActivityQueue)

		activityService := app.NewActivityService(
			repository.NewActivityRepository(db),
			repository.NewFollowRepository(db),
		)
		a.ActivityWorker = worker.NewActivityWorker(a.MQConn, activityService, cfg.RabbitMQ.ActivityQueue, log)
		if err := a.ActivityWorker.Start(ctx); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("start activity worker failed: %w", err)
		}
	}

	log.WithFields(logrus.Fields{
		"driver":   cfg.Database.Driver,
		"redis":    cfg.Redis.Enabled,
		"rabbitmq": cfg.RabbitMQ.Enabled,
	}).Info("bootstrap complete")
	return a, nil
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
	if a.ActivityPublisher != nil {
		if err := a.ActivityPublisher.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MQConn != nil && !a.MQConn.IsClosed() {
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
	return closeErr
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
