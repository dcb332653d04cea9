package wine

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type addWineRequest struct {
	ExistingWineID string `json:"existing_wine_id"`

	Name                string   `json:"name"`
	Producer            *string  `json:"producer"`
	Vintage             *int     `json:"vintage"`
	GrapeVariety        []string `json:"grape_variety"`
	Region              *string  `json:"region"`
	Country             *string  `json:"country"`
	Appellation         *string  `json:"appellation"`
	ABV                 *float64 `json:"abv"`
	Type                string   `json:"type"`
	Body                *int     `json:"body"`
	Tannin              *int     `json:"tannin"`
	Acidity             *int     `json:"acidity"`
	Sweetness           *int     `json:"sweetness"`
	FoodPairing         []string `json:"food_pairing"`
	FlavorNotes         []string `json:"flavor_notes"`
	ServingTempMin      *int     `json:"serving_temp_min"`
	ServingTempMax      *int     `json:"serving_temp_max"`
	DrinkingWindowStart *int     `json:"drinking_window_start"`
	DrinkingWindowEnd   *int     `json:"drinking_window_end"`
	Description         *string  `json:"description"`
	ImageURL            *string  `json:"image_url"`
	AIConfidence        *float64 `json:"ai_confidence"`

	Quantity      int      `json:"quantity"`
	PurchasePrice *float64 `json:"purchase_price"`
	PurchasePlace *string  `json:"purchase_place"`
	PersonalNote  *string  `json:"personal_note"`
}

func (h *Handler) Add(c *gin.Context) {
	userID := c.GetString("userID")

	var req addWineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.ExistingWineID == "" && req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name or existing_wine_id is required"})
		return
	}

	uw, err := h.service.AddToCellar(c.Request.Context(), userID, AddWineInput{
		ExistingWineID:      req.ExistingWineID,
		Name:                req.Name,
		Producer:            req.Producer,
		Vintage:             req.Vintage,
		GrapeVariety:        req.GrapeVariety,
		Region:              req.Region,
		Country:             req.Country,
		Appellation:         req.Appellation,
		ABV:                 req.ABV,
		Type:                req.Type,
		Body:                req.Body,
		Tannin:              req.Tannin,
		Acidity:             req.Acidity,
		Sweetness:           req.Sweetness,
		FoodPairing:         req.FoodPairing,
		FlavorNotes:         req.FlavorNotes,
		ServingTempMin:      req.ServingTempMin,
		ServingTempMax:      req.ServingTempMax,
		DrinkingWindowStart: req.DrinkingWindowStart,
		DrinkingWindowEnd:   req.DrinkingWindowEnd,
		Description:         req.Description,
		ImageURL:            req.ImageURL,
		AIConfidence:        req.AIConfidence,
		Quantity:            req.Quantity,
		PurchasePrice:       req.PurchasePrice,
		PurchasePlace:       req.PurchasePlace,
		PersonalNote:        req.PersonalNote,
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "wine not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, uw)
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("userID")

	entries, err := h.service.ListCellar(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if entries == nil {
		entries = []CellarEntry{}
	}

	c.JSON(http.StatusOK, gin.H{"wines": entries, "total": len(entries)})
}

func (h *Handler) Get(c *gin.Context) {
	userID := c.GetString("userID")

	entry, err := h.service.GetCellarEntry(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "wine not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *Handler) UpdateQuantity(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
		return
	}

	err := h.service.UpdateQuantity(c.Request.Context(), userID, c.Param("id"), *req.Quantity)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "wine not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quantity": *req.Quantity})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}

	err := h.service.UpdateStatus(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "wine not found"})
		case errors.Is(err, ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": req.Status})
}
