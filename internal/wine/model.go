package wine

import "time"

// Wine types.
const (
	TypeRed       = "red"
	TypeWhite     = "white"
	TypeRose      = "rose"
	TypeSparkling = "sparkling"
	TypeDessert   = "dessert"
	TypeFortified = "fortified"
	TypeOther     = "other"
)

// User wine statuses.
const (
	StatusOwned    = "owned"
	StatusConsumed = "consumed"
	StatusGifted   = "gifted"
)

// Wine is the canonical catalog record, deduplicated across users.
type Wine struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Producer     *string   `json:"producer"`
	Vintage      *int      `json:"vintage"`
	GrapeVariety []string  `json:"grape_variety"`
	Region       *string   `json:"region"`
	Country      *string   `json:"country"`
	Appellation  *string   `json:"appellation"`
	ABV          *float64  `json:"abv"`
	Type         string    `json:"type"`

	// Taste profile, 1-5 scale
	Body      *int `json:"body"`
	Tannin    *int `json:"tannin"`
	Acidity   *int `json:"acidity"`
	Sweetness *int `json:"sweetness"`

	// AI-enriched information
	FoodPairing         []string `json:"food_pairing"`
	FlavorNotes         []string `json:"flavor_notes"`
	ServingTempMin      *int     `json:"serving_temp_min"`
	ServingTempMax      *int     `json:"serving_temp_max"`
	DrinkingWindowStart *int     `json:"drinking_window_start"`
	DrinkingWindowEnd   *int     `json:"drinking_window_end"`
	Description         *string  `json:"description"`

	ImageURL     *string  `json:"image_url"`
	AIConfidence *float64 `json:"ai_confidence"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserWine is one user's ownership record of a catalog wine.
type UserWine struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	WineID string `json:"wine_id"`

	Quantity int    `json:"quantity"`
	Status   string `json:"status"`

	PurchaseDate  *time.Time `json:"purchase_date"`
	PurchasePrice *float64   `json:"purchase_price"`
	PurchasePlace *string    `json:"purchase_place"`

	PersonalNote   *string `json:"personal_note"`
	PersonalRating *int    `json:"personal_rating"`

	OriginalImageURL *string `json:"original_image_url"`
	LabelNumber      *string `json:"label_number"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// CellarEntry pairs an ownership record with its catalog wine for listings.
type CellarEntry struct {
	UserWine UserWine `json:"user_wine"`
	Wine     Wine     `json:"wine"`
}
