package scan

import (
	"strings"
	"time"
)

// WineData is the loosely-typed accumulated extraction state of a scan
// session. Its field set grows incrementally across refinements, so it stays
// a map internally; typed structs are built at the response boundary.
type WineData = map[string]any

// Session accumulates recognition observations across one or more uploaded
// images of the same bottle. Version backs optimistic concurrency on refine.
type Session struct {
	ID             string
	UserID         string
	ScanID         string
	ImageURLs      []string
	WineData       WineData
	Confidence     *float64
	ExistingWineID *string
	IsDuplicate    bool
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TasteProfile is the 1-5 scale body/tannin/acidity/sweetness breakdown.
type TasteProfile struct {
	Body      *int `json:"body"`
	Tannin    *int `json:"tannin"`
	Acidity   *int `json:"acidity"`
	Sweetness *int `json:"sweetness"`
}

// ScannedWineInfo is the structured wine extraction sent to clients.
type ScannedWineInfo struct {
	Name                string        `json:"name"`
	Producer            *string       `json:"producer,omitempty"`
	Vintage             *int          `json:"vintage,omitempty"`
	GrapeVariety        []string      `json:"grape_variety,omitempty"`
	Region              *string       `json:"region,omitempty"`
	Country             *string       `json:"country,omitempty"`
	Appellation         *string       `json:"appellation,omitempty"`
	ABV                 *float64      `json:"abv,omitempty"`
	Type                string        `json:"type"`
	TasteProfile        *TasteProfile `json:"taste_profile,omitempty"`
	FoodPairing         []string      `json:"food_pairing,omitempty"`
	FlavorNotes         []string      `json:"flavor_notes,omitempty"`
	ServingTempMin      *int          `json:"serving_temp_min,omitempty"`
	ServingTempMax      *int          `json:"serving_temp_max,omitempty"`
	DrinkingWindowStart *int          `json:"drinking_window_start,omitempty"`
	DrinkingWindowEnd   *int          `json:"drinking_window_end,omitempty"`
	Description         *string       `json:"description,omitempty"`
	Mock                bool          `json:"mock,omitempty"`
}

// BoundingBox locates a detected bottle within the source image.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ScanResponse is the single-scan result.
type ScanResponse struct {
	ScanID         string          `json:"scan_id"`
	Confidence     float64         `json:"confidence"`
	Wine           ScannedWineInfo `json:"wine"`
	ImageURL       string          `json:"image_url"`
	ExistingWineID *string         `json:"existing_wine_id,omitempty"`
	IsDuplicate    bool            `json:"is_duplicate"`
}

// RefineResponse is the merged state after a refinement scan.
type RefineResponse struct {
	ScanID         string          `json:"scan_id"`
	Confidence     float64         `json:"confidence"`
	Wine           ScannedWineInfo `json:"wine"`
	ImageURLs      []string        `json:"image_urls"`
	ExistingWineID *string         `json:"existing_wine_id,omitempty"`
	IsDuplicate    bool            `json:"is_duplicate"`
}

// ScanResultItem is one detected bottle in a batch scan. Index order matches
// detection order and correlates items with their bounding boxes.
type ScanResultItem struct {
	Index       int              `json:"index"`
	Status      string           `json:"status"`
	Confidence  *float64         `json:"confidence,omitempty"`
	Wine        *ScannedWineInfo `json:"wine,omitempty"`
	BoundingBox *BoundingBox     `json:"bounding_box,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// BatchScanResponse aggregates a multi-bottle scan.
type BatchScanResponse struct {
	ScanSessionID          string           `json:"scan_session_id"`
	TotalDetected          int              `json:"total_detected"`
	SuccessfullyRecognized int              `json:"successfully_recognized"`
	Failed                 int              `json:"failed"`
	Wines                  []ScanResultItem `json:"wines"`
}

// OwnedInfo describes the caller's existing holding of a recognized wine.
type OwnedInfo struct {
	UserWineID    string     `json:"user_wine_id"`
	Quantity      int        `json:"quantity"`
	PurchasePrice *float64   `json:"purchase_price,omitempty"`
	PurchaseDate  *time.Time `json:"purchase_date,omitempty"`
}

// DuplicateCheckResponse is the advisory duplicate-check result. It never
// reflects a storage mutation.
type DuplicateCheckResponse struct {
	Wine           ScannedWineInfo `json:"wine"`
	IsOwned        bool            `json:"is_owned"`
	OwnedInfo      *OwnedInfo      `json:"owned_info,omitempty"`
	Recommendation string          `json:"recommendation,omitempty"`
}

// ---- coercion helpers at the map/struct boundary ----

func stringField(data WineData, key string) string {
	v, _ := data[key].(string)
	return v
}

func stringPtrField(data WineData, key string) *string {
	v, ok := data[key].(string)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

func intPtrField(data WineData, key string) *int {
	switch v := data[key].(type) {
	case int:
		return &v
	case float64:
		n := int(v)
		return &n
	}
	return nil
}

func floatPtrField(data WineData, key string) *float64 {
	switch v := data[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}

func stringListField(data WineData, key string) []string {
	switch v := data[key].(type) {
	case []string:
		return v
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// WineInfoFromData validates and coerces the loosely-typed extraction map
// into the structured boundary type.
func WineInfoFromData(data WineData) ScannedWineInfo {
	info := ScannedWineInfo{
		Name:                stringField(data, "name"),
		Producer:            stringPtrField(data, "producer"),
		Vintage:             intPtrField(data, "vintage"),
		GrapeVariety:        stringListField(data, "grape_variety"),
		Region:              stringPtrField(data, "region"),
		Country:             stringPtrField(data, "country"),
		Appellation:         stringPtrField(data, "appellation"),
		ABV:                 floatPtrField(data, "abv"),
		Type:                stringField(data, "type"),
		FoodPairing:         stringListField(data, "food_pairing"),
		FlavorNotes:         stringListField(data, "flavor_notes"),
		ServingTempMin:      intPtrField(data, "serving_temp_min"),
		ServingTempMax:      intPtrField(data, "serving_temp_max"),
		DrinkingWindowStart: intPtrField(data, "drinking_window_start"),
		DrinkingWindowEnd:   intPtrField(data, "drinking_window_end"),
		Description:         stringPtrField(data, "description"),
	}

	if info.Type == "" {
		info.Type = "red"
	}

	body := intPtrField(data, "body")
	tannin := intPtrField(data, "tannin")
	if body != nil || tannin != nil {
		info.TasteProfile = &TasteProfile{
			Body:      body,
			Tannin:    tannin,
			Acidity:   intPtrField(data, "acidity"),
			Sweetness: intPtrField(data, "sweetness"),
		}
	}

	if mock, ok := data["mock"].(bool); ok {
		info.Mock = mock
	}

	return info
}
