package scan

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 10 * 1024 * 1024 // 10MB

var allowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// readImage validates and reads the uploaded image form field.
func readImage(c *gin.Context) ([]byte, string, bool) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
		return nil, "", false
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedContentTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid file type, allowed: image/jpeg, image/png, image/webp",
		})
		return nil, "", false
	}

	if header.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large, maximum size: 10MB"})
		return nil, "", false
	}

	content, err := io.ReadAll(io.LimitReader(file, maxImageSize+1))
	if err != nil || len(content) > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
		return nil, "", false
	}

	filename := header.Filename
	if filename == "" {
		filename = "scan.jpg"
	}

	return content, filename, true
}

// Single handles POST /scan.
func (h *Handler) Single(c *gin.Context) {
	userID := c.GetString("userID")

	content, filename, ok := readImage(c)
	if !ok {
		return
	}

	result, err := h.service.ScanSingle(c.Request.Context(), userID, content, filename)
	if err != nil {
		respondScanError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Batch handles POST /scan/batch.
func (h *Handler) Batch(c *gin.Context) {
	userID := c.GetString("userID")

	content, filename, ok := readImage(c)
	if !ok {
		return
	}

	result, err := h.service.ScanBatch(c.Request.Context(), userID, content, filename)
	if err != nil {
		respondScanError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Check handles POST /scan/check.
func (h *Handler) Check(c *gin.Context) {
	userID := c.GetString("userID")

	content, _, ok := readImage(c)
	if !ok {
		return
	}

	result, err := h.service.CheckDuplicate(c.Request.Context(), userID, content)
	if err != nil {
		respondScanError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Refine handles POST /scan/:scan_id/refine.
func (h *Handler) Refine(c *gin.Context) {
	userID := c.GetString("userID")
	scanID := c.Param("scan_id")

	content, filename, ok := readImage(c)
	if !ok {
		return
	}

	result, err := h.service.Refine(c.Request.Context(), userID, scanID, content, filename)
	if err != nil {
		respondScanError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func respondScanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotRecognized):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Could not recognize wine label. Please try again with a clearer image.",
		})
	case errors.Is(err, ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "scan session not found"})
	case errors.Is(err, ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "scan session was updated concurrently, retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
