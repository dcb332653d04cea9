package scan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/inmengwi/wine-collector/internal/ai"
	"github.com/inmengwi/wine-collector/internal/wine"
)

// ErrNotRecognized is the caller-visible "could not recognize, try a clearer
// image" outcome. It covers provider failures and extractions missing the
// required name; it is an expected result, not a system fault.
var ErrNotRecognized = errors.New("could not recognize wine label")

// Analyzer is the AI capability the orchestrator consumes.
type Analyzer interface {
	VisionConfigured() bool
	AnalyzeWineLabel(ctx context.Context, image []byte) map[string]any
	AnalyzeBatchWineLabels(ctx context.Context, image []byte) []map[string]any
}

// Uploader stores scan images and returns their public URLs.
type Uploader interface {
	UploadScanImage(ctx context.Context, content []byte, scanID, filename string) (string, error)
}

// CatalogMatcher looks up candidate wines in the shared catalog.
type CatalogMatcher interface {
	FindByNameVintage(ctx context.Context, name string, vintage *int) (*wine.Wine, error)
}

// OwnershipReader checks the caller's current holdings.
type OwnershipReader interface {
	FindOwned(ctx context.Context, userID, wineID string) (*wine.UserWine, error)
}

// Service orchestrates the recognition flows: single scan, batch scan,
// duplicate check, and progressive refinement.
type Service struct {
	sessions Repository
	storage  Uploader
	ai       Analyzer
	catalog  CatalogMatcher
	cellar   OwnershipReader
}

func NewService(
	sessions Repository,
	storage Uploader,
	analyzer Analyzer,
	catalog CatalogMatcher,
	cellar OwnershipReader,
) *Service {
	return &Service{
		sessions: sessions,
		storage:  storage,
		ai:       analyzer,
		catalog:  catalog,
		cellar:   cellar,
	}
}

func newScanID() string {
	return "scan_" + randomHex(12)
}

func newBatchSessionID() string {
	return "session_" + randomHex(12)
}

func randomHex(n int) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return hex[:n]
}

// ScanSingle runs the single-label flow: upload, analyze, match against the
// catalog, persist a new scan session.
func (s *Service) ScanSingle(
	ctx context.Context,
	userID string,
	image []byte,
	filename string,
) (*ScanResponse, error) {

	scanID := newScanID()

	imageURL, err := s.storage.UploadScanImage(ctx, image, scanID, filename)
	if err != nil {
		return nil, fmt.Errorf("upload scan image: %w", err)
	}

	wineData := s.analyze(ctx, image)
	if wineData == nil {
		return nil, ErrNotRecognized
	}
	if strings.TrimSpace(stringField(wineData, "name")) == "" {
		return nil, ErrNotRecognized
	}

	existingWineID, isDuplicate, err := s.matchCatalog(ctx, userID, wineData)
	if err != nil {
		return nil, err
	}

	confidence := ConfidenceOf(wineData)
	session := &Session{
		UserID:         userID,
		ScanID:         scanID,
		ImageURLs:      []string{imageURL},
		WineData:       wineData,
		Confidence:     &confidence,
		ExistingWineID: existingWineID,
		IsDuplicate:    isDuplicate,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	log.Printf(
		"SCAN_DONE scan_id=%s confidence=%.2f duplicate=%t",
		scanID, confidence, isDuplicate,
	)

	return &ScanResponse{
		ScanID:         scanID,
		Confidence:     confidence,
		Wine:           WineInfoFromData(wineData),
		ImageURL:       imageURL,
		ExistingWineID: existingWineID,
		IsDuplicate:    isDuplicate,
	}, nil
}

// ScanBatch runs the multi-bottle flow. With no vision provider configured
// it reports zero detections rather than an error. Item order follows
// detection order so callers can correlate results with bounding boxes.
func (s *Service) ScanBatch(
	ctx context.Context,
	userID string,
	image []byte,
	filename string,
) (*BatchScanResponse, error) {

	sessionID := newBatchSessionID()

	if _, err := s.storage.UploadScanImage(ctx, image, sessionID, filename); err != nil {
		return nil, fmt.Errorf("upload scan image: %w", err)
	}

	var items []map[string]any
	if s.ai.VisionConfigured() {
		items = s.ai.AnalyzeBatchWineLabels(ctx, image)
	}

	results := make([]ScanResultItem, 0, len(items))
	successCount := 0
	failedCount := 0

	for idx, item := range items {
		status, _ := item["status"].(string)
		name := strings.TrimSpace(stringField(item, "name"))

		if status == "success" && name != "" {
			successCount++
			confidence := ConfidenceOf(item)
			info := WineInfoFromData(item)
			results = append(results, ScanResultItem{
				Index:       idx,
				Status:      "success",
				Confidence:  &confidence,
				Wine:        &info,
				BoundingBox: boundingBoxFrom(item),
			})
			continue
		}

		failedCount++
		errMsg, _ := item["error"].(string)
		if errMsg == "" {
			errMsg = "Could not recognize wine label"
		}
		results = append(results, ScanResultItem{
			Index:       idx,
			Status:      "failed",
			Error:       errMsg,
			BoundingBox: boundingBoxFrom(item),
		})
	}

	log.Printf(
		"BATCH_SCAN_DONE session_id=%s detected=%d recognized=%d failed=%d",
		sessionID, len(items), successCount, failedCount,
	)

	return &BatchScanResponse{
		ScanSessionID:          sessionID,
		TotalDetected:          len(items),
		SuccessfullyRecognized: successCount,
		Failed:                 failedCount,
		Wines:                  results,
	}, nil
}

// CheckDuplicate is the advisory flow used at wine shops: recognize the
// label and report whether the caller already owns the wine. It never
// mutates the collection or persists a session.
func (s *Service) CheckDuplicate(
	ctx context.Context,
	userID string,
	image []byte,
) (*DuplicateCheckResponse, error) {

	wineData := s.analyze(ctx, image)
	if wineData == nil {
		return nil, ErrNotRecognized
	}
	if strings.TrimSpace(stringField(wineData, "name")) == "" {
		return nil, ErrNotRecognized
	}

	resp := &DuplicateCheckResponse{
		Wine: WineInfoFromData(wineData),
	}

	name := stringField(wineData, "name")
	existing, err := s.catalog.FindByNameVintage(ctx, name, intPtrField(wineData, "vintage"))
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return resp, nil
	}

	owned, err := s.cellar.FindOwned(ctx, userID, existing.ID)
	if err != nil {
		return nil, err
	}
	if owned == nil {
		return resp, nil
	}

	resp.IsOwned = true
	resp.OwnedInfo = &OwnedInfo{
		UserWineID:    owned.ID,
		Quantity:      owned.Quantity,
		PurchasePrice: owned.PurchasePrice,
		PurchaseDate:  owned.PurchaseDate,
	}
	resp.Recommendation = fmt.Sprintf(
		"You already own %d bottle(s) of this wine. Buying one more would bring your total to %d.",
		owned.Quantity, owned.Quantity+1,
	)

	return resp, nil
}

// Refine merges a new image's observations into an existing session. The
// merged state is computed fully before a single versioned commit, so a
// failure anywhere leaves the prior session state intact.
func (s *Service) Refine(
	ctx context.Context,
	userID string,
	scanID string,
	image []byte,
	filename string,
) (*RefineResponse, error) {

	session, err := s.sessions.Get(ctx, userID, scanID)
	if err != nil {
		return nil, err
	}

	refineID := fmt.Sprintf("%s_refine_%s", scanID, randomHex(8))
	imageURL, err := s.storage.UploadScanImage(ctx, image, refineID, filename)
	if err != nil {
		return nil, fmt.Errorf("upload scan image: %w", err)
	}

	wineData := s.analyze(ctx, image)
	if wineData == nil {
		return nil, ErrNotRecognized
	}
	// Mock observations may only refine mock sessions. Merging fabricated
	// fields into genuinely recognized state would lock in the mock's high
	// confidence via the max rule.
	if isMockData(wineData) && !isMockData(session.WineData) {
		return nil, ErrNotRecognized
	}

	merged := MergeWineData(session.WineData, wineData)
	confidence := MergeConfidence(session.Confidence, ConfidenceOf(wineData))

	// Match against the merged data: the merged name/vintage may differ
	// from either individual observation.
	existingWineID, isDuplicate, err := s.matchCatalog(ctx, userID, merged)
	if err != nil {
		return nil, err
	}

	session.ImageURLs = append(session.ImageURLs, imageURL)
	session.WineData = merged
	session.Confidence = &confidence
	session.ExistingWineID = existingWineID
	session.IsDuplicate = isDuplicate

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	log.Printf(
		"SCAN_REFINED scan_id=%s images=%d confidence=%.2f duplicate=%t",
		scanID, len(session.ImageURLs), confidence, isDuplicate,
	)

	return &RefineResponse{
		ScanID:         scanID,
		Confidence:     confidence,
		Wine:           WineInfoFromData(merged),
		ImageURLs:      session.ImageURLs,
		ExistingWineID: existingWineID,
		IsDuplicate:    isDuplicate,
	}, nil
}

// analyze returns the extraction for one image. With no provider configured
// it returns mock data explicitly flagged as such, keeping development
// usable without ever passing off fabricated data as a real recognition.
func (s *Service) analyze(ctx context.Context, image []byte) WineData {
	if !s.ai.VisionConfigured() {
		return ai.MockWineData()
	}
	return s.ai.AnalyzeWineLabel(ctx, image)
}

func isMockData(data WineData) bool {
	mock, _ := data["mock"].(bool)
	return mock
}

func (s *Service) matchCatalog(
	ctx context.Context,
	userID string,
	wineData WineData,
) (existingWineID *string, isDuplicate bool, err error) {

	name := stringField(wineData, "name")
	if strings.TrimSpace(name) == "" {
		return nil, false, nil
	}

	existing, err := s.catalog.FindByNameVintage(ctx, name, intPtrField(wineData, "vintage"))
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, nil
	}

	owned, err := s.cellar.FindOwned(ctx, userID, existing.ID)
	if err != nil {
		return nil, false, err
	}

	return &existing.ID, owned != nil, nil
}

func boundingBoxFrom(item map[string]any) *BoundingBox {
	raw, ok := item["bounding_box"].(map[string]any)
	if !ok {
		return nil
	}

	intAt := func(key string) int {
		if v, ok := raw[key].(float64); ok {
			return int(v)
		}
		return 0
	}

	return &BoundingBox{
		X:      intAt("x"),
		Y:      intAt("y"),
		Width:  intAt("width"),
		Height: intAt("height"),
	}
}
