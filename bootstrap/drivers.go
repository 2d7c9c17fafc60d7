package bootstrap

import (
	"context"
	"fmt"
	"time"

	"newscout/config"
	"newscout/driver"
	"newscout/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meilisearch/meilisearch-go"
)

// initPostgresDriver builds the connection pool from config and wraps it
// in the article store driver.
func initPostgresDriver(ctx context.Context, cfg *config.Config) (*driver.PostgresDriver, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.GetDatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create database pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.Timeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Logger.Info("Database connected successfully", "host", cfg.Database.Host)
	return driver.NewPostgresDriverFromPool(pool), nil
}

// initMeilisearchClient initializes the Meilisearch client with retry
// logic; the engine may come up after this service in deployment.
func initMeilisearchClient(cfg *config.Config) (meilisearch.ServiceManager, error) {
	const maxRetries = 5
	const retryDelay = 5 * time.Second

	logger.Logger.Info("Connecting to Meilisearch", "host", cfg.Meilisearch.Host)

	var msClient meilisearch.ServiceManager

	for i := range maxRetries {
		msClient = meilisearch.New(cfg.Meilisearch.Host, meilisearch.WithAPIKey(cfg.Meilisearch.APIKey))

		if _, healthErr := msClient.Health(); healthErr != nil {
			logger.Logger.Warn("Meilisearch not ready, retrying", "attempt", i+1, "max", maxRetries, "err", healthErr)
			if i < maxRetries-1 {
				time.Sleep(retryDelay)
				continue
			}
			return nil, fmt.Errorf("failed to connect to Meilisearch after %d attempts: %w", maxRetries, healthErr)
		}

		logger.Logger.Info("Connected to Meilisearch successfully")
		break
	}

	return msClient, nil
}
