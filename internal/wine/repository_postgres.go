package wine

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresCatalogRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCatalogRepository(db *pgxpool.Pool) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

const wineColumns = `
	id, name, producer, vintage, grape_variety, region, country,
	appellation, abv, type, body, tannin, acidity, sweetness,
	food_pairing, flavor_notes, serving_temp_min, serving_temp_max,
	drinking_window_start, drinking_window_end, description,
	image_url, ai_confidence, created_at, updated_at
`

func scanWine(row pgx.Row) (*Wine, error) {
	var w Wine
	err := row.Scan(
		&w.ID, &w.Name, &w.Producer, &w.Vintage, &w.GrapeVariety,
		&w.Region, &w.Country, &w.Appellation, &w.ABV, &w.Type,
		&w.Body, &w.Tannin, &w.Acidity, &w.Sweetness,
		&w.FoodPairing, &w.FlavorNotes, &w.ServingTempMin, &w.ServingTempMax,
		&w.DrinkingWindowStart, &w.DrinkingWindowEnd, &w.Description,
		&w.ImageURL, &w.AIConfidence, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// FindByNameVintage does the duplicate-detection lookup. Substring ILIKE on
// name keeps the match cheap and approximate; IS NOT DISTINCT FROM makes a
// NULL vintage match only NULL vintages.
func (r *PostgresCatalogRepository) FindByNameVintage(
	ctx context.Context,
	name string,
	vintage *int,
) (*Wine, error) {

	query := `
		SELECT ` + wineColumns + `
		FROM wines
		WHERE name ILIKE '%' || $1 || '%'
		  AND vintage IS NOT DISTINCT FROM $2
		LIMIT 1
	`

	w, err := scanWine(r.db.QueryRow(ctx, query, name, vintage))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (r *PostgresCatalogRepository) Create(ctx context.Context, w *Wine) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}

	query := `
		INSERT INTO wines (
			id, name, producer, vintage, grape_variety, region, country,
			appellation, abv, type, body, tannin, acidity, sweetness,
			food_pairing, flavor_notes, serving_temp_min, serving_temp_max,
			drinking_window_start, drinking_window_end, description,
			image_url, ai_confidence
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23
		)
		RETURNING created_at, updated_at
	`

	return r.db.QueryRow(ctx, query,
		w.ID, w.Name, w.Producer, w.Vintage, w.GrapeVariety,
		w.Region, w.Country, w.Appellation, w.ABV, w.Type,
		w.Body, w.Tannin, w.Acidity, w.Sweetness,
		w.FoodPairing, w.FlavorNotes, w.ServingTempMin, w.ServingTempMax,
		w.DrinkingWindowStart, w.DrinkingWindowEnd, w.Description,
		w.ImageURL, w.AIConfidence,
	).Scan(&w.CreatedAt, &w.UpdatedAt)
}

func (r *PostgresCatalogRepository) GetByID(ctx context.Context, id string) (*Wine, error) {
	query := `SELECT ` + wineColumns + ` FROM wines WHERE id = $1`

	w, err := scanWine(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

type PostgresCellarRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCellarRepository(db *pgxpool.Pool) *PostgresCellarRepository {
	return &PostgresCellarRepository{db: db}
}

const userWineColumns = `
	id, user_id, wine_id, quantity, status,
	purchase_date, purchase_price, purchase_place,
	personal_note, personal_rating, original_image_url, label_number,
	created_at, updated_at, deleted_at
`

func scanUserWine(row pgx.Row) (*UserWine, error) {
	var uw UserWine
	err := row.Scan(
		&uw.ID, &uw.UserID, &uw.WineID, &uw.Quantity, &uw.Status,
		&uw.PurchaseDate, &uw.PurchasePrice, &uw.PurchasePlace,
		&uw.PersonalNote, &uw.PersonalRating, &uw.OriginalImageURL, &uw.LabelNumber,
		&uw.CreatedAt, &uw.UpdatedAt, &uw.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &uw, nil
}

func (r *PostgresCellarRepository) FindOwned(
	ctx context.Context,
	userID, wineID string,
) (*UserWine, error) {

	query := `
		SELECT ` + userWineColumns + `
		FROM user_wines
		WHERE user_id = $1
		  AND wine_id = $2
		  AND deleted_at IS NULL
		  AND status = 'owned'
		LIMIT 1
	`

	uw, err := scanUserWine(r.db.QueryRow(ctx, query, userID, wineID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return uw, nil
}

func (r *PostgresCellarRepository) Create(ctx context.Context, uw *UserWine) error {
	if uw.ID == "" {
		uw.ID = uuid.New().String()
	}
	if uw.Status == "" {
		uw.Status = StatusOwned
	}
	if uw.Quantity == 0 {
		uw.Quantity = 1
	}

	query := `
		INSERT INTO user_wines (
			id, user_id, wine_id, quantity, status,
			purchase_date, purchase_price, purchase_place,
			personal_note, personal_rating, original_image_url, label_number
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	return r.db.QueryRow(ctx, query,
		uw.ID, uw.UserID, uw.WineID, uw.Quantity, uw.Status,
		uw.PurchaseDate, uw.PurchasePrice, uw.PurchasePlace,
		uw.PersonalNote, uw.PersonalRating, uw.OriginalImageURL, uw.LabelNumber,
	).Scan(&uw.CreatedAt, &uw.UpdatedAt)
}

func (r *PostgresCellarRepository) GetByID(
	ctx context.Context,
	userID, userWineID string,
) (*UserWine, error) {

	query := `
		SELECT ` + userWineColumns + `
		FROM user_wines
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	`

	uw, err := scanUserWine(r.db.QueryRow(ctx, query, userWineID, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return uw, nil
}

func (r *PostgresCellarRepository) ListByUser(
	ctx context.Context,
	userID string,
) ([]CellarEntry, error) {

	query := `
		SELECT
			uw.id, uw.user_id, uw.wine_id, uw.quantity, uw.status,
			uw.purchase_date, uw.purchase_price, uw.purchase_place,
			uw.personal_note, uw.personal_rating, uw.original_image_url, uw.label_number,
			uw.created_at, uw.updated_at, uw.deleted_at,
			w.id, w.name, w.producer, w.vintage, w.grape_variety, w.region, w.country,
			w.appellation, w.abv, w.type, w.body, w.tannin, w.acidity, w.sweetness,
			w.food_pairing, w.flavor_notes, w.serving_temp_min, w.serving_temp_max,
			w.drinking_window_start, w.drinking_window_end, w.description,
			w.image_url, w.ai_confidence, w.created_at, w.updated_at
		FROM user_wines uw
		JOIN wines w ON w.id = uw.wine_id
		WHERE uw.user_id = $1 AND uw.deleted_at IS NULL
		ORDER BY uw.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []CellarEntry

	for rows.Next() {
		var e CellarEntry
		if err := rows.Scan(
			&e.UserWine.ID, &e.UserWine.UserID, &e.UserWine.WineID,
			&e.UserWine.Quantity, &e.UserWine.Status,
			&e.UserWine.PurchaseDate, &e.UserWine.PurchasePrice, &e.UserWine.PurchasePlace,
			&e.UserWine.PersonalNote, &e.UserWine.PersonalRating,
			&e.UserWine.OriginalImageURL, &e.UserWine.LabelNumber,
			&e.UserWine.CreatedAt, &e.UserWine.UpdatedAt, &e.UserWine.DeletedAt,
			&e.Wine.ID, &e.Wine.Name, &e.Wine.Producer, &e.Wine.Vintage,
			&e.Wine.GrapeVariety, &e.Wine.Region, &e.Wine.Country,
			&e.Wine.Appellation, &e.Wine.ABV, &e.Wine.Type,
			&e.Wine.Body, &e.Wine.Tannin, &e.Wine.Acidity, &e.Wine.Sweetness,
			&e.Wine.FoodPairing, &e.Wine.FlavorNotes,
			&e.Wine.ServingTempMin, &e.Wine.ServingTempMax,
			&e.Wine.DrinkingWindowStart, &e.Wine.DrinkingWindowEnd, &e.Wine.Description,
			&e.Wine.ImageURL, &e.Wine.AIConfidence, &e.Wine.CreatedAt, &e.Wine.UpdatedAt,
		); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *PostgresCellarRepository) UpdateQuantity(
	ctx context.Context,
	userID, userWineID string,
	quantity int,
) error {

	tag, err := r.db.Exec(ctx, `
		UPDATE user_wines
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL
	`, quantity, userWineID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresCellarRepository) UpdateStatus(
	ctx context.Context,
	userID, userWineID, status string,
) error {

	tag, err := r.db.Exec(ctx, `
		UPDATE user_wines
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL
	`, status, userWineID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
