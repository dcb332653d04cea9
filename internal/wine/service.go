package wine

import (
	"context"
	"errors"
)

var ErrInvalidStatus = errors.New("invalid wine status")

// AddWineInput carries everything needed to put a wine into a user's cellar.
// ExistingWineID references a catalog wine detected during scanning; when it
// is empty a new catalog wine is created from the embedded fields.
type AddWineInput struct {
	ExistingWineID string

	Name                string
	Producer            *string
	Vintage             *int
	GrapeVariety        []string
	Region              *string
	Country             *string
	Appellation         *string
	ABV                 *float64
	Type                string
	Body                *int
	Tannin              *int
	Acidity             *int
	Sweetness           *int
	FoodPairing         []string
	FlavorNotes         []string
	ServingTempMin      *int
	ServingTempMax      *int
	DrinkingWindowStart *int
	DrinkingWindowEnd   *int
	Description         *string
	ImageURL            *string
	AIConfidence        *float64

	Quantity      int
	PurchasePrice *float64
	PurchasePlace *string
	PersonalNote  *string
}

type Service struct {
	catalog CatalogRepository
	cellar  CellarRepository
}

func NewService(catalog CatalogRepository, cellar CellarRepository) *Service {
	return &Service{catalog: catalog, cellar: cellar}
}

// AddToCellar puts a wine into the user's collection. An already-owned wine
// gets its quantity bumped instead of a second ownership row.
func (s *Service) AddToCellar(ctx context.Context, userID string, in AddWineInput) (*UserWine, error) {
	var catalogWine *Wine

	if in.ExistingWineID != "" {
		w, err := s.catalog.GetByID(ctx, in.ExistingWineID)
		if err != nil {
			return nil, err
		}
		catalogWine = w
	} else {
		if in.Name == "" {
			return nil, errors.New("wine name is required")
		}
		wineType := in.Type
		if wineType == "" {
			wineType = TypeRed
		}
		catalogWine = &Wine{
			Name:                in.Name,
			Producer:            in.Producer,
			Vintage:             in.Vintage,
			GrapeVariety:        in.GrapeVariety,
			Region:              in.Region,
			Country:             in.Country,
			Appellation:         in.Appellation,
			ABV:                 in.ABV,
			Type:                wineType,
			Body:                in.Body,
			Tannin:              in.Tannin,
			Acidity:             in.Acidity,
			Sweetness:           in.Sweetness,
			FoodPairing:         in.FoodPairing,
			FlavorNotes:         in.FlavorNotes,
			ServingTempMin:      in.ServingTempMin,
			ServingTempMax:      in.ServingTempMax,
			DrinkingWindowStart: in.DrinkingWindowStart,
			DrinkingWindowEnd:   in.DrinkingWindowEnd,
			Description:         in.Description,
			ImageURL:            in.ImageURL,
			AIConfidence:        in.AIConfidence,
		}
		if err := s.catalog.Create(ctx, catalogWine); err != nil {
			return nil, err
		}
	}

	quantity := in.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	owned, err := s.cellar.FindOwned(ctx, userID, catalogWine.ID)
	if err != nil {
		return nil, err
	}
	if owned != nil {
		if err := s.cellar.UpdateQuantity(ctx, userID, owned.ID, owned.Quantity+quantity); err != nil {
			return nil, err
		}
		owned.Quantity += quantity
		return owned, nil
	}

	uw := &UserWine{
		UserID:           userID,
		WineID:           catalogWine.ID,
		Quantity:         quantity,
		Status:           StatusOwned,
		PurchasePrice:    in.PurchasePrice,
		PurchasePlace:    in.PurchasePlace,
		PersonalNote:     in.PersonalNote,
		OriginalImageURL: in.ImageURL,
	}
	if err := s.cellar.Create(ctx, uw); err != nil {
		return nil, err
	}
	return uw, nil
}

func (s *Service) ListCellar(ctx context.Context, userID string) ([]CellarEntry, error) {
	return s.cellar.ListByUser(ctx, userID)
}

func (s *Service) GetCellarEntry(ctx context.Context, userID, userWineID string) (*CellarEntry, error) {
	uw, err := s.cellar.GetByID(ctx, userID, userWineID)
	if err != nil {
		return nil, err
	}
	w, err := s.catalog.GetByID(ctx, uw.WineID)
	if err != nil {
		return nil, err
	}
	return &CellarEntry{UserWine: *uw, Wine: *w}, nil
}

func (s *Service) UpdateQuantity(ctx context.Context, userID, userWineID string, quantity int) error {
	if quantity < 0 {
		return errors.New("quantity must not be negative")
	}
	return s.cellar.UpdateQuantity(ctx, userID, userWineID, quantity)
}

// UpdateStatus tracks consumption or gifting of a bottle.
func (s *Service) UpdateStatus(ctx context.Context, userID, userWineID, status string) error {
	switch status {
	case StatusOwned, StatusConsumed, StatusGifted:
	default:
		return ErrInvalidStatus
	}
	return s.cellar.UpdateStatus(ctx, userID, userWineID, status)
}
