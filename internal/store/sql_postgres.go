package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avelikov/go-bookmark-sync/internal/config"
	"github.com/avelikov/go-bookmark-sync/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB wraps the server database connection together with its error
// classifier.
type DB struct {
	*sql.DB
	classifier *PostgresErrorClassifier
	logger     *logger.Logger
}

// NewConnectPostgres opens and pings a PostgreSQL connection described by
// cfg.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Msg("connected to database successfully")

	return &DB{
		DB:         conn,
		classifier: NewPostgresErrorClassifier(),
		logger:     log,
	}, nil
}
