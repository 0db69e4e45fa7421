package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"contacts-backend/internal/config"
	"contacts-backend/internal/domains/contact"
	contactHandler "contacts-backend/internal/domains/contact/handler"
	contactRepo "contacts-backend/internal/domains/contact/repository"
	contactService "contacts-backend/internal/domains/contact/service"
	infraCache "contacts-backend/internal/infrastructure/cache"
	"contacts-backend/internal/infrastructure/database"
	"contacts-backend/pkg/cache"
	"contacts-backend/pkg/token"
)

// Container holds every dependency of the application, built in layer
// order: config, infrastructure, storage, services, handlers.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache
	Tokens *token.Manager

	Registry *contact.Registry

	ContactService contact.Service
	ContactHandler *contactHandler.ContactHandler
}

// NewContainer builds the dependency graph for the given profile. The
// storage registry is installed into the contact domain before anything
// can reach a lifecycle method.
func NewContainer(profile string) (*Container, error) {
	c := &Container{}

	cfg, err := config.Load(profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	c.Config = cfg
	log.Info().
		Str("environment", cfg.App.Environment).
		Str("profile", cfg.App.Profile).
		Msg("config loaded")

	db := database.NewPostgresDB(&cfg.Database)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("connecting database: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(context.Background()); err != nil {
		// the cache is an accelerator, not a dependency
		log.Warn().Err(err).Msg("redis unavailable, caching disabled")
		c.Cache = cache.Noop{}
	} else {
		c.Cache = redisCache
	}

	c.Tokens = token.NewManager(cfg.Token.Secret, cfg.Token.ExpiryHours)

	c.Registry = contactRepo.NewRegistry(db.Pool)
	contact.Use(c.Registry)

	c.ContactService = contactService.NewService(c.Registry, c.Cache)
	c.ContactHandler = contactHandler.NewContactHandler(c.ContactService)

	log.Info().Msg("container initialized")
	return c, nil
}

// Cleanup releases infrastructure resources during shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
		log.Info().Msg("database connections closed")
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("closing redis")
		}
	}
}
