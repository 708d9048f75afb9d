package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	subscriptionUsecases "github.com/orris-inc/subadmin/internal/application/subscription/usecases"
	"github.com/orris-inc/subadmin/internal/infrastructure/config"
	"github.com/orris-inc/subadmin/internal/infrastructure/email"
	"github.com/orris-inc/subadmin/internal/infrastructure/notification"
	"github.com/orris-inc/subadmin/internal/infrastructure/pubsub"
	"github.com/orris-inc/subadmin/internal/infrastructure/ratelimit"
	"github.com/orris-inc/subadmin/internal/infrastructure/storage"
	"github.com/orris-inc/subadmin/internal/shared/goroutine"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

// initInfrastructure initializes Redis, all repositories, proof storage and
// the purchase notifier chain.
func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	if cfg.Redis.Enabled {
		client, err := initRedis(cfg, log)
		if err != nil {
			return err
		}
		c.redis = client
		c.rateLimiter = ratelimit.NewRedisRateLimiter(client)
	}

	c.repos = newRepositories(c.db, log)

	proofStorage, err := storage.NewLocalProofStorage(
		cfg.Storage.UploadDir,
		cfg.Server.PublicBaseURL(),
		int64(cfg.Storage.MaxProofSizeMB)<<20,
		log.Named("storage"),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize proof storage: %w", err)
	}
	c.proofStorage = proofStorage

	c.hub = notification.NewHub(log.Named("hub"), &notification.HubConfig{
		SendBuffer: cfg.Notification.StreamBuffer,
	})

	c.initNotifier()
	return nil
}

// initRedis creates and tests the Redis client connection.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

// initNotifier builds the notifier handed to use cases. With Redis, hub
// delivery goes through Pub/Sub so every instance relays into its own hub;
// without it the local hub is notified directly.
func (c *Container) initNotifier() {
	cfg := c.cfg
	log := c.log

	var mailer subscriptionUsecases.PurchaseNotifier
	if cfg.Email.Enabled() {
		mailer = email.NewEmailNotifier(email.SMTPConfig{
			Host:           cfg.Email.SMTPHost,
			Port:           cfg.Email.SMTPPort,
			Username:       cfg.Email.SMTPUser,
			Password:       cfg.Email.SMTPPassword,
			FromAddress:    cfg.Email.FromAddress,
			FromName:       cfg.Email.FromName,
			AdminAddresses: cfg.Email.AdminAddresses,
		}, log.Named("email"))
	}

	if c.redis == nil {
		c.notifier = notification.NewMultiNotifier(c.hub, mailer)
		return
	}

	c.eventBus = pubsub.NewRedisPurchaseEventBus(c.redis, log.Named("pubsub"))
	c.notifier = notification.NewMultiNotifier(c.eventBus, mailer)

	ctx, cancel := context.WithCancel(context.Background())
	c.eventBusCancelMu.Lock()
	c.eventBusCancel = cancel
	c.eventBusCancelMu.Unlock()

	goroutine.SafeGo(log, "purchase-event-subscriber", func() {
		if err := c.eventBus.Subscribe(ctx, c.hub); err != nil {
			logSubscriberExit(log, "purchase event subscriber", err)
		}
	})
}

// Shutdown stops the event relay, closes SSE streams and releases Redis.
func (c *Container) Shutdown() {
	c.eventBusCancelMu.Lock()
	if c.eventBusCancel != nil {
		c.eventBusCancel()
		c.eventBusCancel = nil
	}
	c.eventBusCancelMu.Unlock()

	// Close all SSE connections first so the HTTP server can drain quickly
	if c.hub != nil {
		c.hub.Shutdown()
	}

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close Redis client", "error", err)
		}
	}
}

// logSubscriberExit logs a subscriber exit at the appropriate level.
// Context cancellation during shutdown is expected and logged at INFO.
func logSubscriberExit(log logger.Interface, name string, err error) {
	if errors.Is(err, context.Canceled) {
		log.Infow(name+" stopped", "reason", "context canceled")
		return
	}
	log.Errorw(name+" failed", "error", err)
}
