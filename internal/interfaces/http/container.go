package http

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	subscriptionUsecases "github.com/orris-inc/subadmin/internal/application/subscription/usecases"
	"github.com/orris-inc/subadmin/internal/infrastructure/config"
	"github.com/orris-inc/subadmin/internal/infrastructure/notification"
	"github.com/orris-inc/subadmin/internal/infrastructure/pubsub"
	"github.com/orris-inc/subadmin/internal/infrastructure/ratelimit"
	"github.com/orris-inc/subadmin/internal/infrastructure/storage"
	"github.com/orris-inc/subadmin/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases and
// handlers, and wires them together. Shutdown releases background resources.
type Container struct {
	// Core infrastructure
	engine  *gin.Engine
	db      *gorm.DB
	sqlDB   *sql.DB
	cfg     *config.Config
	log     logger.Interface
	redis   *redis.Client
	version string

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Purchase notifications
	hub      *notification.Hub
	notifier subscriptionUsecases.PurchaseNotifier

	// Cross-instance relay into the local hub
	eventBus         *pubsub.RedisPurchaseEventBus
	eventBusCancel   context.CancelFunc
	eventBusCancelMu sync.Mutex

	proofStorage *storage.LocalProofStorage
	rateLimiter  ratelimit.RateLimiter
}

// NewContainer creates a new Container with all dependencies wired together.
func NewContainer(db *gorm.DB, cfg *config.Config, version string, log logger.Interface) (*Container, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	c := &Container{
		engine:  gin.New(),
		db:      db,
		sqlDB:   sqlDB,
		cfg:     cfg,
		log:     log,
		version: version,
	}

	// Section 1: Infrastructure - Redis, repositories, storage, notifiers
	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	// Section 2: Use cases
	c.initUseCases()

	// Section 3: Handlers
	c.initHandlers()

	return c, nil
}

// Engine returns the Gin engine.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}
