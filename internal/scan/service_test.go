package scan

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/inmengwi/wine-collector/internal/wine"
)

type fakeAnalyzer struct {
	configured bool
	results    []WineData
	batch      []map[string]any
}

func (f *fakeAnalyzer) VisionConfigured() bool { return f.configured }

func (f *fakeAnalyzer) AnalyzeWineLabel(_ context.Context, _ []byte) map[string]any {
	if len(f.results) == 0 {
		return nil
	}
	next := f.results[0]
	f.results = f.results[1:]
	return next
}

func (f *fakeAnalyzer) AnalyzeBatchWineLabels(_ context.Context, _ []byte) []map[string]any {
	return f.batch
}

type fakeUploader struct {
	fail     bool
	uploaded []string
}

func (f *fakeUploader) UploadScanImage(_ context.Context, _ []byte, scanID, _ string) (string, error) {
	if f.fail {
		return "", errors.New("bucket unavailable")
	}
	url := "https://cdn.test/scans/" + scanID + ".jpg"
	f.uploaded = append(f.uploaded, url)
	return url, nil
}

func newTestService(analyzer *fakeAnalyzer, uploader *fakeUploader) (*Service, *InMemoryRepository, *wine.InMemoryCatalogRepository, *wine.InMemoryCellarRepository) {
	sessions := NewInMemoryRepository()
	catalog := wine.NewInMemoryCatalogRepository()
	cellar := wine.NewInMemoryCellarRepository(catalog)
	svc := NewService(sessions, uploader, analyzer, catalog, cellar)
	return svc, sessions, catalog, cellar
}

func TestScanSingle_PersistsSession(t *testing.T) {
	analyzer := &fakeAnalyzer{
		configured: true,
		results: []WineData{{
			"name":       "Opus One",
			"vintage":    float64(2018),
			"confidence": 0.9,
		}},
	}
	svc, sessions, _, _ := newTestService(analyzer, &fakeUploader{})

	resp, err := svc.ScanSingle(context.Background(), "user-1", []byte("img"), "label.jpg")
	if err != nil {
		t.Fatalf("ScanSingle failed: %v", err)
	}

	if resp.Wine.Name != "Opus One" {
		t.Errorf("unexpected wine name: %s", resp.Wine.Name)
	}
	if resp.Confidence != 0.9 {
		t.Errorf("unexpected confidence: %v", resp.Confidence)
	}
	if resp.Wine.Vintage == nil || *resp.Wine.Vintage != 2018 {
		t.Errorf("unexpected vintage: %v", resp.Wine.Vintage)
	}
	if !strings.HasPrefix(resp.ScanID, "scan_") {
		t.Errorf("unexpected scan id: %s", resp.ScanID)
	}

	session, err := sessions.Get(context.Background(), "user-1", resp.ScanID)
	if err != nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if session.Version != 1 {
		t.Errorf("new session version = %d, want 1", session.Version)
	}
	if len(session.ImageURLs) != 1 {
		t.Errorf("expected one image URL, got %v", session.ImageURLs)
	}
}

func TestScanSingle_NotRecognized(t *testing.T) {
	cases := map[string][]WineData{
		"provider failure": {},
		"missing name":     {{"vintage": float64(2018)}},
		"blank name":       {{"name": "   "}},
	}

	for label, results := range cases {
		analyzer := &fakeAnalyzer{configured: true, results: results}
		svc, _, _, _ := newTestService(analyzer, &fakeUploader{})

		_, err := svc.ScanSingle(context.Background(), "user-1", []byte("img"), "label.jpg")
		if !errors.Is(err, ErrNotRecognized) {
			t.Errorf("%s: expected ErrNotRecognized, got %v", label, err)
		}
	}
}

func TestScanSingle_UploadFailureIsFatal(t *testing.T) {
	analyzer := &fakeAnalyzer{configured: true, results: []WineData{{"name": "Opus One"}}}
	svc, _, _, _ := newTestService(analyzer, &fakeUploader{fail: true})

	_, err := svc.ScanSingle(context.Background(), "user-1", []byte("img"), "label.jpg")
	if err == nil || errors.Is(err, ErrNotRecognized) {
		t.Fatalf("expected upload error, got %v", err)
	}
}

func TestScanSingle_DegradedModeReturnsMock(t *testing.T) {
	svc, _, _, _ := newTestService(&fakeAnalyzer{configured: false}, &fakeUploader{})

	resp, err := svc.ScanSingle(context.Background(), "user-1", []byte("img"), "label.jpg")
	if err != nil {
		t.Fatalf("degraded scan failed: %v", err)
	}
	if !resp.Wine.Mock {
		t.Error("degraded-mode result must be flagged as mock")
	}
	if resp.Wine.Name == "" {
		t.Error("mock result should carry a wine name")
	}
}

func TestScanSingle_DetectsDuplicate(t *testing.T) {
	svc, _, catalog, cellar := newTestService(&fakeAnalyzer{
		configured: true,
		results:    []WineData{{"name": "Opus One", "vintage": float64(2018), "confidence": 0.9}},
	}, &fakeUploader{})

	vintage := 2018
	existing := &wine.Wine{Name: "Opus One", Vintage: &vintage, Type: wine.TypeRed}
	if err := catalog.Create(context.Background(), existing); err != nil {
		t.Fatal(err)
	}
	owned := &wine.UserWine{UserID: "user-1", WineID: existing.ID, Quantity: 1}
	if err := cellar.Create(context.Background(), owned); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.ScanSingle(context.Background(), "user-1", []byte("img"), "label.jpg")
	if err != nil {
		t.Fatalf("ScanSingle failed: %v", err)
	}
	if resp.ExistingWineID == nil || *resp.ExistingWineID != existing.ID {
		t.Errorf("expected catalog match %s, got %v", existing.ID, resp.ExistingWineID)
	}
	if !resp.IsDuplicate {
		t.Error("expected duplicate flag for owned wine")
	}
}

func TestScanBatch_ClassifiesItemsInOrder(t *testing.T) {
	analyzer := &fakeAnalyzer{
		configured: true,
		batch: []map[string]any{
			{"status": "success", "name": "Opus One", "confidence": 0.92},
			{"status": "failed", "error": "label obscured"},
			{"status": "success", "name": "Chateau Margaux", "confidence": 0.88},
		},
	}
	svc, _, _, _ := newTestService(analyzer, &fakeUploader{})

	resp, err := svc.ScanBatch(context.Background(), "user-1", []byte("img"), "shelf.jpg")
	if err != nil {
		t.Fatalf("ScanBatch failed: %v", err)
	}

	if resp.TotalDetected != 3 || resp.SuccessfullyRecognized != 2 || resp.Failed != 1 {
		t.Errorf("unexpected totals: detected=%d recognized=%d failed=%d",
			resp.TotalDetected, resp.SuccessfullyRecognized, resp.Failed)
	}
	if !strings.HasPrefix(resp.ScanSessionID, "session_") {
		t.Errorf("unexpected session id: %s", resp.ScanSessionID)
	}

	for i, item := range resp.Wines {
		if item.Index != i {
			t.Errorf("item %d carries index %d", i, item.Index)
		}
	}
	if resp.Wines[1].Status != "failed" || resp.Wines[1].Error != "label obscured" {
		t.Errorf("unexpected failed item: %+v", resp.Wines[1])
	}
	if resp.Wines[2].Wine == nil || resp.Wines[2].Wine.Name != "Chateau Margaux" {
		t.Errorf("unexpected third item: %+v", resp.Wines[2])
	}
}

func TestScanBatch_SuccessWithoutNameCountsAsFailed(t *testing.T) {
	analyzer := &fakeAnalyzer{
		configured: true,
		batch:      []map[string]any{{"status": "success", "name": ""}},
	}
	svc, _, _, _ := newTestService(analyzer, &fakeUploader{})

	resp, err := svc.ScanBatch(context.Background(), "user-1", []byte("img"), "shelf.jpg")
	if err != nil {
		t.Fatalf("ScanBatch failed: %v", err)
	}
	if resp.Failed != 1 || resp.SuccessfullyRecognized != 0 {
		t.Errorf("nameless success should fail: %+v", resp)
	}
	if resp.Wines[0].Error == "" {
		t.Error("failed item should carry an error message")
	}
}

func TestScanBatch_UnconfiguredReportsZeroDetections(t *testing.T) {
	svc, _, _, _ := newTestService(&fakeAnalyzer{configured: false}, &fakeUploader{})

	resp, err := svc.ScanBatch(context.Background(), "user-1", []byte("img"), "shelf.jpg")
	if err != nil {
		t.Fatalf("ScanBatch failed: %v", err)
	}
	if resp.TotalDetected != 0 || len(resp.Wines) != 0 {
		t.Errorf("expected zero detections without a provider, got %+v", resp)
	}
}

func TestCheckDuplicate_ReportsOwnedQuantity(t *testing.T) {
	svc, _, catalog, cellar := newTestService(&fakeAnalyzer{
		configured: true,
		results:    []WineData{{"name": "Opus One", "vintage": float64(2018)}},
	}, &fakeUploader{})

	vintage := 2018
	existing := &wine.Wine{Name: "Opus One", Vintage: &vintage, Type: wine.TypeRed}
	if err := catalog.Create(context.Background(), existing); err != nil {
		t.Fatal(err)
	}
	owned := &wine.UserWine{UserID: "user-1", WineID: existing.ID, Quantity: 2}
	if err := cellar.Create(context.Background(), owned); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.CheckDuplicate(context.Background(), "user-1", []byte("img"))
	if err != nil {
		t.Fatalf("CheckDuplicate failed: %v", err)
	}

	if !resp.IsOwned {
		t.Fatal("expected is_owned")
	}
	if resp.OwnedInfo == nil || resp.OwnedInfo.Quantity != 2 {
		t.Errorf("unexpected owned info: %+v", resp.OwnedInfo)
	}
	if !strings.Contains(resp.Recommendation, "2 bottle(s)") ||
		!strings.Contains(resp.Recommendation, "total to 3") {
		t.Errorf("unexpected recommendation: %s", resp.Recommendation)
	}
}

func TestCheckDuplicate_NotOwned(t *testing.T) {
	svc, _, _, _ := newTestService(&fakeAnalyzer{
		configured: true,
		results:    []WineData{{"name": "Opus One"}},
	}, &fakeUploader{})

	resp, err := svc.CheckDuplicate(context.Background(), "user-1", []byte("img"))
	if err != nil {
		t.Fatalf("CheckDuplicate failed: %v", err)
	}
	if resp.IsOwned || resp.OwnedInfo != nil {
		t.Errorf("expected unowned result, got %+v", resp)
	}
}

func TestRefine_MergesAcrossImages(t *testing.T) {
	analyzer := &fakeAnalyzer{
		configured: true,
		results: []WineData{
			{"name": "Opus One", "confidence": 0.7},
			{"name": "", "vintage": float64(2018), "region": "Napa Valley", "confidence": 0.85},
		},
	}
	svc, _, _, _ := newTestService(analyzer, &fakeUploader{})

	first, err := svc.ScanSingle(context.Background(), "user-1", []byte("front"), "front.jpg")
	if err != nil {
		t.Fatalf("ScanSingle failed: %v", err)
	}

	refined, err := svc.Refine(context.Background(), "user-1", first.ScanID, []byte("back"), "back.jpg")
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}

	if refined.Wine.Name != "Opus One" {
		t.Errorf("blank name erased earlier observation: %s", refined.Wine.Name)
	}
	if refined.Wine.Vintage == nil || *refined.Wine.Vintage != 2018 {
		t.Errorf("vintage from second image missing: %v", refined.Wine.Vintage)
	}
	if refined.Wine.Region == nil || *refined.Wine.Region != "Napa Valley" {
		t.Errorf("region from second image missing: %v", refined.Wine.Region)
	}
	if refined.Confidence != 0.85 {
		t.Errorf("unexpected confidence: %v", refined.Confidence)
	}
	if len(refined.ImageURLs) != 2 || refined.ImageURLs[0] != first.ImageURL {
		t.Errorf("image URLs out of order: %v", refined.ImageURLs)
	}
}

func TestRefine_ConfidenceNeverRegresses(t *testing.T) {
	analyzer := &fakeAnalyzer{
		configured: true,
		results: []WineData{
			{"name": "Opus One", "confidence": 0.9},
			{"name": "Opus One", "confidence": 0.4},
		},
	}
	svc, _, _, _ := newTestService(analyzer, &fakeUploader{})

	first, err := svc.ScanSingle(context.Background(), "user-1", []byte("front"), "front.jpg")
	if err != nil {
		t.Fatalf("ScanSingle failed: %v", err)
	}

	refined, err := svc.Refine(context.Background(), "user-1", first.ScanID, []byte("blurry"), "blurry.jpg")
	if err != nil {
		t.Fatalf("Refine failed: %v", err)
	}
	if refined.Confidence != 0.9 {
		t.Errorf("confidence regressed to %v", refined.Confidence)
	}
}

func TestRefine_MockObservationDoesNotPolluteRealSession(t *testing.T) {
	analyzer := &fakeAnalyzer{
		configured: true,
		results:    []WineData{{"name": "Opus One", "confidence": 0.7}},
	}
	svc, sessions, _, _ := newTestService(analyzer, &fakeUploader{})

	first, err := svc.ScanSingle(context.Background(), "user-1", []byte("front"), "front.jpg")
	if err != nil {
		t.Fatalf("ScanSingle failed: %v", err)
	}

	// Provider drops out between scan and refine.
	analyzer.configured = false

	_, err = svc.Refine(context.Background(), "user-1", first.ScanID, []byte("back"), "back.jpg")
	if !errors.Is(err, ErrNotRecognized) {
		t.Fatalf("expected ErrNotRecognized, got %v", err)
	}

	session, err := sessions.Get(context.Background(), "user-1", first.ScanID)
	if err != nil {
		t.Fatal(err)
	}
	if session.WineData["name"] != "Opus One" {
		t.Errorf("session name changed: %v", session.WineData["name"])
	}
	if session.Confidence == nil || *session.Confidence != 0.7 {
		t.Errorf("mock confidence leaked into session: %v", session.Confidence)
	}
	if mock, _ := session.WineData["mock"].(bool); mock {
		t.Error("real session flagged as mock")
	}
}

func TestRefine_MockSessionStaysRefinable(t *testing.T) {
	svc, _, _, _ := newTestService(&fakeAnalyzer{configured: false}, &fakeUploader{})

	first, err := svc.ScanSingle(context.Background(), "user-1", []byte("front"), "front.jpg")
	if err != nil {
		t.Fatalf("degraded scan failed: %v", err)
	}

	refined, err := svc.Refine(context.Background(), "user-1", first.ScanID, []byte("back"), "back.jpg")
	if err != nil {
		t.Fatalf("degraded refine failed: %v", err)
	}
	if !refined.Wine.Mock {
		t.Error("degraded refine result must stay flagged as mock")
	}
	if len(refined.ImageURLs) != 2 {
		t.Errorf("expected both image URLs, got %v", refined.ImageURLs)
	}
}

func TestRefine_UnknownSession(t *testing.T) {
	svc, _, _, _ := newTestService(&fakeAnalyzer{configured: true}, &fakeUploader{})

	_, err := svc.Refine(context.Background(), "user-1", "scan_missing", []byte("img"), "x.jpg")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRefine_OtherUsersSessionNotVisible(t *testing.T) {
	analyzer := &fakeAnalyzer{
		configured: true,
		results: []WineData{
			{"name": "Opus One", "confidence": 0.7},
		},
	}
	svc, _, _, _ := newTestService(analyzer, &fakeUploader{})

	first, err := svc.ScanSingle(context.Background(), "user-1", []byte("front"), "front.jpg")
	if err != nil {
		t.Fatalf("ScanSingle failed: %v", err)
	}

	_, err = svc.Refine(context.Background(), "user-2", first.ScanID, []byte("img"), "x.jpg")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound for foreign session, got %v", err)
	}
}
