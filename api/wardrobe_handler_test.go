package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/raushankrgupta/wardrobe-ai-backend/classifier"
	"github.com/raushankrgupta/wardrobe-ai-backend/models"
	"github.com/raushankrgupta/wardrobe-ai-backend/wardrobe"
)

type stubItemStore struct {
	items   []models.Item
	details map[string]*models.ItemDetails
	created []*models.ItemDetails
}

func (s *stubItemStore) CreateItem(ctx context.Context, item *models.Item) (string, error) {
	item.ID = primitive.NewObjectID()
	return item.ID.Hex(), nil
}

func (s *stubItemStore) UpdateItem(ctx context.Context, userID, itemID string, patch map[string]interface{}) error {
	return nil
}

func (s *stubItemStore) ListItems(ctx context.Context, userID string, recentFirst bool, limit int64) ([]models.Item, error) {
	return s.items, nil
}

func (s *stubItemStore) FindItemsByCategory(ctx context.Context, userID, category string, limit int64) ([]models.Item, error) {
	var matched []models.Item
	for _, it := range s.items {
		if it.ClothingCategory == category {
			matched = append(matched, it)
		}
	}
	return matched, nil
}

func (s *stubItemStore) CreateDetails(ctx context.Context, details *models.ItemDetails) error {
	if s.details == nil {
		s.details = map[string]*models.ItemDetails{}
	}
	s.details[details.ID] = details
	s.created = append(s.created, details)
	return nil
}

func (s *stubItemStore) FindDetailsByID(ctx context.Context, detailID string) (*models.ItemDetails, error) {
	return s.details[detailID], nil
}

type stubBlobStore struct{}

func (s *stubBlobStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	return nil
}

func (s *stubBlobStore) DownloadURL(ctx context.Context, key string) (string, error) {
	return "https://blob.test/" + key, nil
}

type stubClassifier struct {
	resp *models.AiResponse
	err  error
}

func (s *stubClassifier) Classify(ctx context.Context, imageBase64 string) (*models.AiResponse, error) {
	return s.resp, s.err
}

func authedRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	return req.WithContext(ContextWithUserID(req.Context(), "u1"))
}

func TestAnalyzeHandlerUnauthorized(t *testing.T) {
	Wardrobe = wardrobe.NewService(&stubItemStore{}, &stubBlobStore{}, &stubClassifier{})

	req := httptest.NewRequest(http.MethodPost, "/wardrobe/analyze", strings.NewReader(`{"image":"aW1hZ2U="}`))
	rec := httptest.NewRecorder()
	AnalyzeHandler(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAnalyzeHandlerSoftFailure(t *testing.T) {
	Wardrobe = wardrobe.NewService(&stubItemStore{}, &stubBlobStore{}, &stubClassifier{
		err: fmt.Errorf("%w: too blurry", classifier.ErrAnalysisUnavailable),
	})

	req := authedRequest(http.MethodPost, "/wardrobe/analyze", strings.NewReader(`{"image":"aW1hZ2U="}`))
	rec := httptest.NewRecorder()
	AnalyzeHandler(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["error"] != "Analysis unavailable" {
		t.Errorf("error = %q, want %q", body["error"], "Analysis unavailable")
	}
}

func TestAnalyzeHandlerMissingImage(t *testing.T) {
	Wardrobe = wardrobe.NewService(&stubItemStore{}, &stubBlobStore{}, &stubClassifier{})

	req := authedRequest(http.MethodPost, "/wardrobe/analyze", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	AnalyzeHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeHandlerSuccess(t *testing.T) {
	store := &stubItemStore{items: []models.Item{
		{ID: primitive.NewObjectID(), UserID: "u1", Name: "BlackJeans", ClothingCategory: "bottom"},
	}}
	Wardrobe = wardrobe.NewService(store, &stubBlobStore{}, &stubClassifier{
		resp: &models.AiResponse{ClothingType: "t shirt", ClothingCategory: "top", SustainabilityScore: 7},
	})

	req := authedRequest(http.MethodPost, "/wardrobe/analyze", strings.NewReader(`{"image":"aW1hZ2U="}`))
	rec := httptest.NewRecorder()
	AnalyzeHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var analysis wardrobe.Analysis
	if err := json.NewDecoder(rec.Body).Decode(&analysis); err != nil {
		t.Fatal(err)
	}
	if analysis.SoughtCategory != "bottom" {
		t.Errorf("sought category = %q, want %q", analysis.SoughtCategory, "bottom")
	}
	if len(analysis.CompatibleItems) != 1 || analysis.CompatibleItems[0].Name != "BlackJeans" {
		t.Errorf("compatible items = %+v, want only BlackJeans", analysis.CompatibleItems)
	}
}

func TestAddItemHandlerCreatesDetailRecord(t *testing.T) {
	store := &stubItemStore{}
	Wardrobe = wardrobe.NewService(store, &stubBlobStore{}, &stubClassifier{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	analysis, _ := json.Marshal(models.AiResponse{
		ClothingType:        "denim jacket",
		ClothingCategory:    "top",
		SustainabilityScore: 6,
	})
	mw.WriteField("analysis", string(analysis))
	fw, _ := mw.CreateFormFile("image", "photo.png")
	fw.Write([]byte("pngdata"))
	mw.Close()

	req := authedRequest(http.MethodPost, "/wardrobe/items", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	AddItemHandler(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp struct {
		Item models.Item `json:"item"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Item.Name != "DenimJacket" {
		t.Errorf("item name = %q, want %q", resp.Item.Name, "DenimJacket")
	}

	if len(store.created) != 1 {
		t.Fatalf("want 1 detail record, got %d", len(store.created))
	}
	wantID := wardrobe.DetailID("u1", resp.Item.ID.Hex())
	if store.created[0].ID != wantID {
		t.Errorf("detail id = %q, want %q", store.created[0].ID, wantID)
	}
	if !strings.HasSuffix(store.created[0].ImageURL, ".png") {
		t.Errorf("detail image key = %q, want .png suffix", store.created[0].ImageURL)
	}
}

func TestItemDetailsHandlerMissingRecord(t *testing.T) {
	Wardrobe = wardrobe.NewService(&stubItemStore{}, &stubBlobStore{}, &stubClassifier{})

	req := authedRequest(http.MethodGet, "/wardrobe/item-details?item_id=abc", nil)
	rec := httptest.NewRecorder()
	ItemDetailsHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var view wardrobe.ItemDetailsView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatal(err)
	}
	if view.Details != nil {
		t.Errorf("details = %+v, want null for missing record", view.Details)
	}
}

func TestListItemsHandler(t *testing.T) {
	store := &stubItemStore{items: []models.Item{
		{ID: primitive.NewObjectID(), UserID: "u1", Name: "TShirt", ClothingCategory: "top"},
		{ID: primitive.NewObjectID(), UserID: "u1", Name: "BlackJeans", ClothingCategory: "bottom"},
	}}
	Wardrobe = wardrobe.NewService(store, &stubBlobStore{}, &stubClassifier{})

	req := authedRequest(http.MethodGet, "/wardrobe/items?order=recent&limit=5", nil)
	rec := httptest.NewRecorder()
	ListItemsHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp ListItemsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 2 || len(resp.Items) != 2 {
		t.Errorf("total = %d items = %d, want 2/2", resp.Total, len(resp.Items))
	}
}
