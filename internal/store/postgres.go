package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps one JSONB record per user key in the user_records
// table, overwritten wholesale on every put.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresStore(log *slog.Logger, pool *pgxpool.Pool) *PostgresStore {
	if log == nil {
		log = slog.Default()
	}
	return &PostgresStore{
		pool:   pool,
		logger: log.With(slog.String("store", "postgres")),
	}
}

func (s *PostgresStore) Get(ctx context.Context, userKey string) (Record, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT record FROM user_records WHERE user_key = $1`,
		userKey,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("%w: %v", ErrReadFailed, err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, false, fmt.Errorf("%w: decode record: %v", ErrReadFailed, err)
	}
	return rec, true, nil
}

func (s *PostgresStore) Put(ctx context.Context, userKey string, rec Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("%w: encode record: %v", ErrWriteFailed, err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO user_records (user_key, record, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (user_key)
		 DO UPDATE SET record = EXCLUDED.record, updated_at = now()`,
		userKey, raw,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}
