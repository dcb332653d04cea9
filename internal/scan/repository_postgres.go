package scan

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *Session) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Version == 0 {
		s.Version = 1
	}

	query := `
		INSERT INTO scan_sessions (
			id, user_id, scan_id, image_urls, wine_data,
			confidence, existing_wine_id, is_duplicate, version
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	return r.db.QueryRow(ctx, query,
		s.ID, s.UserID, s.ScanID, s.ImageURLs, s.WineData,
		s.Confidence, s.ExistingWineID, s.IsDuplicate, s.Version,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *PostgresRepository) Get(ctx context.Context, userID, scanID string) (*Session, error) {
	query := `
		SELECT
			id, user_id, scan_id, image_urls, wine_data,
			confidence, existing_wine_id, is_duplicate, version,
			created_at, updated_at
		FROM scan_sessions
		WHERE user_id = $1 AND scan_id = $2
	`

	var s Session
	err := r.db.QueryRow(ctx, query, userID, scanID).Scan(
		&s.ID, &s.UserID, &s.ScanID, &s.ImageURLs, &s.WineData,
		&s.Confidence, &s.ExistingWineID, &s.IsDuplicate, &s.Version,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s *Session) error {
	query := `
		UPDATE scan_sessions
		SET
			image_urls = $1,
			wine_data = $2,
			confidence = $3,
			existing_wine_id = $4,
			is_duplicate = $5,
			version = version + 1,
			updated_at = NOW()
		WHERE user_id = $6 AND scan_id = $7 AND version = $8
	`

	tag, err := r.db.Exec(ctx, query,
		s.ImageURLs, s.WineData, s.Confidence, s.ExistingWineID, s.IsDuplicate,
		s.UserID, s.ScanID, s.Version,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrConflict
	}

	s.Version++
	return nil
}
