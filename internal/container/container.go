package container

import (
	"github.com/playmaker86/activity-booking/internal/config"
	"github.com/playmaker86/activity-booking/internal/service"
	"github.com/playmaker86/activity-booking/pkg/logger"
	"github.com/playmaker86/activity-booking/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	RedisClient *redis.Client
	Services    *service.Services
}

// New creates a new dependency injection container. Redis is optional: if no
// URL is configured or the connection fails, the app runs without caching.
func New(cfg *config.Config, log *logger.Logger) (*Container, error) {
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	return &Container{
		Config:      cfg,
		Logger:      log,
		RedisClient: redisClient,
		Services:    &service.Services{},
	}, nil
}

// SetServices wires the service layer after repositories exist
func (c *Container) SetServices(services *service.Services) {
	c.Services = services
}

// GetAuthService returns the auth service
func (c *Container) GetAuthService() service.AuthService {
	return c.Services.Auth
}

// GetWeChatService returns the WeChat identity adapter
func (c *Container) GetWeChatService() service.WeChatService {
	return c.Services.WeChat
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetRedisClient returns the Redis client (may be nil if not configured)
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}

// HasRedis returns true if Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}
