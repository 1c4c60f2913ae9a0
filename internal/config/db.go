package config

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"phonebook/internal/logger"
)

// ConnectDB establishes a pgx connection pool to PostgreSQL, retrying a few
// times so the service survives the database coming up slightly later.
func ConnectDB(cfg *Config, log *logger.Logger) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(context.Background(), cfg.DSN())
		if err == nil {
			err = pool.Ping(context.Background())
			if err == nil {
				log.Info().Msg("connected to PostgreSQL")
				return pool, nil
			}
		}
		log.Warn().Err(err).Int("attempt", i+1).Int("max", maxRetries).
			Msgf("failed to connect to database, retrying in %v", retryInterval)
		time.Sleep(retryInterval)
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}
