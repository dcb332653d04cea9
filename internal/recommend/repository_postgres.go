package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresCacheRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCacheRepository(db *pgxpool.Pool) *PostgresCacheRepository {
	return &PostgresCacheRepository{db: db}
}

func (r *PostgresCacheRepository) Get(
	ctx context.Context,
	userID, queryHash string,
) (map[string]any, bool, error) {

	var response map[string]any
	err := r.db.QueryRow(ctx, `
		SELECT response
		FROM recommendation_cache
		WHERE user_id = $1 AND query_hash = $2 AND expires_at > NOW()
	`, userID, queryHash).Scan(&response)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return response, true, nil
}

func (r *PostgresCacheRepository) Put(
	ctx context.Context,
	userID, queryHash string,
	response map[string]any,
	ttl time.Duration,
) error {

	_, err := r.db.Exec(ctx, `
		INSERT INTO recommendation_cache (id, user_id, query_hash, response, expires_at)
		VALUES ($1, $2, $3, $4, NOW() + $5)
		ON CONFLICT (user_id, query_hash)
		DO UPDATE SET response = $4, expires_at = NOW() + $5
	`, uuid.New().String(), userID, queryHash, response, ttl)

	return err
}
