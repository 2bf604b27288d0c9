package app

import (
	"context"
	"statuspage/config"
	"statuspage/internals/modules/status"
	"statuspage/internals/modules/uptime"
	"statuspage/pkg/redisstore"
	"statuspage/pkg/statuscache"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type Container struct {
	DB          *pgxpool.Pool
	RedisClient *redisstore.Client
	Logger      *zerolog.Logger

	statusCache   *statuscache.Cache[status.ResolvedStatus]
	statusHandler *status.Handler
	uptimeHandler *uptime.Handler
}

func NewContainer(ctx context.Context, db *pgxpool.Pool, cfg *config.Config, logger *zerolog.Logger) (*Container, error) {

	redisClient, err := redisstore.New(&cfg.Redis)
	if err != nil {
		return nil, err
	}

	validate := validator.New()

	policy := statuscache.PropagateError
	if cfg.Status.FailOpen {
		policy = statuscache.FailOpen
	}
	statusCache := statuscache.New[status.ResolvedStatus](cfg.Status.CacheTTL, policy)

	statusRepo := status.NewRepository(db, logger)
	uptimeRepo := uptime.NewRepository(db, logger)

	statusSvc := status.NewService(statusRepo, statusCache, logger)
	uptimeSvc := uptime.NewService(uptimeRepo, redisClient, &cfg.Uptime, logger)

	statusHandler := status.NewHandler(statusSvc, logger)
	uptimeHandler := uptime.NewHandler(uptimeSvc, validate)

	return &Container{
		DB:            db,
		RedisClient:   redisClient,
		Logger:        logger,
		statusCache:   statusCache,
		statusHandler: statusHandler,
		uptimeHandler: uptimeHandler,
	}, nil
}

func (c *Container) Shutdown(ctx context.Context) error {
	c.statusCache.Stop()

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Error().Err(err).Msg("redis close failed")
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}
	return nil
}
