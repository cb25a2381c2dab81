package retweet

import (
	"context"
	"fmt"

	"github.com/dd0wney/cluso-hits/pkg/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the part of a pgx pool or connection the source needs
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource reads retweets from a query returning
// (retweeter_id, author_id) or (retweeter_id, author_id, retweeter_name,
// author_name). Any other column count is rejected.
// Rows with a NULL id are skipped.
type PostgresSource struct {
	db    Querier
	query string
	pool  *pgxpool.Pool
}

// NewPostgresSource opens a connection pool and checks connectivity
func NewPostgresSource(ctx context.Context, cfg config.PostgresConfig) (*PostgresSource, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := NewPostgresSourceWithQuerier(pool, cfg.Query)
	s.pool = pool
	return s, nil
}

// NewPostgresSourceWithQuerier creates a source around an existing connection
func NewPostgresSourceWithQuerier(db Querier, query string) *PostgresSource {
	return &PostgresSource{db: db, query: query}
}

func (s *PostgresSource) Name() string { return config.SourcePostgres }

func (s *PostgresSource) Load(ctx context.Context) (*Batch, error) {
	rows, err := s.db.Query(ctx, s.query)
	if err != nil {
		return nil, fmt.Errorf("query retweets: %w", err)
	}
	defer rows.Close()

	var withNames bool
	switch cols := len(rows.FieldDescriptions()); cols {
	case 2:
	case 4:
		withNames = true
	default:
		return nil, fmt.Errorf("%w: retweet query returned %d columns, want 2 (retweeter_id, author_id) or 4 (with retweeter_name, author_name)", ErrMalformed, cols)
	}

	batch := &Batch{Source: config.SourcePostgres}

	for rows.Next() {
		var (
			retweeter, author *int64
			rName, aName      *string
		)

		dest := []any{&retweeter, &author}
		if withNames {
			dest = append(dest, &rName, &aName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan retweet row: %w", err)
		}

		if retweeter == nil || author == nil {
			batch.Skip()
			continue
		}

		rec := Record{RetweeterID: *retweeter, AuthorID: *author}
		if rName != nil {
			rec.RetweeterName = *rName
		}
		if aName != nil {
			rec.AuthorName = *aName
		}
		batch.Add(rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate retweet rows: %w", err)
	}

	return batch, nil
}

// Close releases the pool if this source opened it
func (s *PostgresSource) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
