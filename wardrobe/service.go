package wardrobe

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/raushankrgupta/wardrobe-ai-backend/classifier"
	"github.com/raushankrgupta/wardrobe-ai-backend/models"
	"github.com/raushankrgupta/wardrobe-ai-backend/utils"
)

// compatibleCandidateLimit caps how many pairing candidates the analysis
// step fetches for review.
const compatibleCandidateLimit = 3

// ItemStore is the document-store surface the workflow needs. Each call is
// an independent round trip; there is no transaction spanning calls and
// partial completion of a sequence is the service's problem to record.
type ItemStore interface {
	CreateItem(ctx context.Context, item *models.Item) (string, error)
	UpdateItem(ctx context.Context, userID, itemID string, patch map[string]interface{}) error
	ListItems(ctx context.Context, userID string, recentFirst bool, limit int64) ([]models.Item, error)
	FindItemsByCategory(ctx context.Context, userID, category string, limit int64) ([]models.Item, error)
	CreateDetails(ctx context.Context, details *models.ItemDetails) error
	FindDetailsByID(ctx context.Context, detailID string) (*models.ItemDetails, error)
}

// BlobStore is the object-storage surface: upload a blob under a key, then
// resolve the key to a download URL.
type BlobStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	DownloadURL(ctx context.Context, key string) (string, error)
}

// Service orchestrates the wardrobe ingestion workflow and the read paths
// behind the app's screens.
type Service struct {
	items ItemStore
	blobs BlobStore
	ai    classifier.Classifier
}

func NewService(items ItemStore, blobs BlobStore, ai classifier.Classifier) *Service {
	return &Service{items: items, blobs: blobs, ai: ai}
}

// Analysis is the review payload: the classifier result plus up to three
// of the user's own items from the paired category.
type Analysis struct {
	Result          *models.AiResponse `json:"result"`
	SoughtCategory  string             `json:"sought_category"`
	CompatibleItems []models.Item      `json:"compatible_items"`
}

// Analyze runs the classifying step: send the image to the classifier, then
// look up pairing candidates among the user's items. Nothing is persisted.
// An empty image payload returns ErrNoImage before any call is made.
func (s *Service) Analyze(ctx context.Context, userID, imageBase64 string) (*Analysis, error) {
	if imageBase64 == "" {
		return nil, ErrNoImage
	}

	result, err := s.ai.Classify(ctx, imageBase64)
	if err != nil {
		return nil, err
	}

	sought := CompatibleCategory(result.ClothingCategory)

	var candidates []models.Item
	if userID != "" {
		candidates, err = s.items.FindItemsByCategory(ctx, userID, sought, compatibleCandidateLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch compatible items: %w", err)
		}
	}
	if candidates == nil {
		candidates = []models.Item{}
	}

	return &Analysis{
		Result:          result,
		SoughtCategory:  sought,
		CompatibleItems: candidates,
	}, nil
}

// PersistRequest carries everything the confirmed analysis step needs.
type PersistRequest struct {
	UserID        string
	Analysis      *models.AiResponse
	CompatibleIDs []string
	Image         io.Reader
	ImageExt      string // defaults to "jpg"
	ImageMime     string
}

// Persist runs the persisting step of the workflow, strictly in sequence:
//
//  1. create the per-user item record (status pending_image)
//  2. upload the image blob under wardrobe/{userId}/{itemId}.{ext}
//  3. patch the item with the image URL (status complete)
//  4. create the global detail record keyed "{userId}-{itemId}"
//
// Each step's outcome is recorded on the item's status field. If the upload
// fails the item is left imageless with status image_failed and no detail
// record is ever written; the error is returned typed instead of swallowed.
// The detail write is an upsert on the composite id, so a retried ingestion
// cannot create duplicate detail records.
func (s *Service) Persist(ctx context.Context, req PersistRequest) (*models.Item, error) {
	if req.UserID == "" {
		return nil, ErrNoSession
	}
	if req.Analysis == nil || req.Image == nil {
		return nil, ErrNoImage
	}

	item := &models.Item{
		UserID:              req.UserID,
		Name:                utils.ToPascalCase(req.Analysis.ClothingType),
		ClothingType:        req.Analysis.ClothingType,
		ClothingCategory:    req.Analysis.ClothingCategory,
		SustainabilityScore: req.Analysis.SustainabilityScore,
		CompatibleItems:     req.CompatibleIDs,
		Status:              models.ItemStatusPendingImage,
		CreatedAt:           time.Now(),
	}

	itemID, err := s.items.CreateItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to create wardrobe item: %w", err)
	}

	ext := strings.TrimPrefix(req.ImageExt, ".")
	if ext == "" {
		ext = "jpg"
	}
	key := fmt.Sprintf("wardrobe/%s/%s.%s", req.UserID, itemID, ext)

	contentType := req.ImageMime
	if contentType == "" {
		contentType = "image/jpeg"
	}

	if err := s.blobs.Upload(ctx, key, req.Image, contentType); err != nil {
		// The item stays visible but imageless; the status flag records why.
		s.markImageFailed(ctx, req.UserID, itemID)
		return nil, fmt.Errorf("failed to upload item image: %w", err)
	}

	// Confirm the blob resolves before attaching it. The record keeps the
	// durable key; presigned URLs are minted at response time and expire.
	downloadURL, err := s.blobs.DownloadURL(ctx, key)
	if err != nil {
		s.markImageFailed(ctx, req.UserID, itemID)
		return nil, fmt.Errorf("failed to resolve image URL: %w", err)
	}

	if err := s.items.UpdateItem(ctx, req.UserID, itemID, map[string]interface{}{
		"image_url": key,
		"status":    models.ItemStatusComplete,
	}); err != nil {
		return nil, fmt.Errorf("failed to attach image to item: %w", err)
	}

	details := &models.ItemDetails{
		ID:                  DetailID(req.UserID, itemID),
		UserID:              req.UserID,
		Name:                item.Name,
		ClothingType:        req.Analysis.ClothingType,
		ClothingCategory:    req.Analysis.ClothingCategory,
		SustainabilityScore: req.Analysis.SustainabilityScore,
		ImageURL:            key,
		Material:            req.Analysis.Material,
		FabricComposition:   req.Analysis.FabricComposition,
		LongevityScore:      req.Analysis.LongevityScore,
		CO2Consumption:      req.Analysis.CO2Consumption,
		MaintenanceTips:     req.Analysis.MaintenanceTips,
		CompatibleItems:     req.CompatibleIDs,
		CreatedAt:           item.CreatedAt,
	}
	if err := s.items.CreateDetails(ctx, details); err != nil {
		return nil, fmt.Errorf("failed to create item details: %w", err)
	}

	item.ImageURL = downloadURL
	item.Status = models.ItemStatusComplete
	return item, nil
}

func (s *Service) markImageFailed(ctx context.Context, userID, itemID string) {
	// Best effort: the original failure is what the caller needs to see.
	if err := s.items.UpdateItem(ctx, userID, itemID, map[string]interface{}{
		"status": models.ItemStatusImageFailed,
	}); err != nil {
		fmt.Printf("failed to mark item %s as image_failed: %v\n", itemID, err)
	}
}

// ListItems returns the user's wardrobe, most recent first when requested.
// A missing session yields an empty wardrobe without touching the store.
func (s *Service) ListItems(ctx context.Context, userID string, recentFirst bool, limit int64) ([]models.Item, error) {
	if userID == "" {
		return []models.Item{}, nil
	}
	items, err := s.items.ListItems(ctx, userID, recentFirst, limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}
	return items, nil
}

// ItemDetailsView is the detail-screen payload: the enriched record plus
// the user's items matching its stored compatible ids.
type ItemDetailsView struct {
	Details         *models.ItemDetails `json:"details"`
	CompatibleItems []models.Item       `json:"compatible_items"`
}

// ItemDetails looks up the global detail record by its composite id and
// filters the user's items down to the stored compatible ids. A missing
// detail record is "no data", not an error: the view comes back nil.
func (s *Service) ItemDetails(ctx context.Context, userID, itemID string) (*ItemDetailsView, error) {
	if userID == "" {
		return nil, nil
	}

	details, err := s.items.FindDetailsByID(ctx, DetailID(userID, itemID))
	if err != nil {
		return nil, err
	}
	if details == nil {
		return nil, nil
	}

	view := &ItemDetailsView{Details: details, CompatibleItems: []models.Item{}}
	if len(details.CompatibleItems) == 0 {
		return view, nil
	}

	items, err := s.items.ListItems(ctx, userID, false, 0)
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(details.CompatibleItems))
	for _, id := range details.CompatibleItems {
		wanted[id] = true
	}
	for _, it := range items {
		if wanted[it.ID.Hex()] {
			view.CompatibleItems = append(view.CompatibleItems, it)
		}
	}
	return view, nil
}

// Suggestions holds the home-screen queries: a couple of outfit suggestions
// and the most recently added items.
type Suggestions struct {
	Suggested []models.Item `json:"suggested"`
	Recent    []models.Item `json:"recent"`
}

func (s *Service) Suggestions(ctx context.Context, userID string) (*Suggestions, error) {
	suggested, err := s.ListItems(ctx, userID, false, 2)
	if err != nil {
		return nil, err
	}
	recent, err := s.ListItems(ctx, userID, true, 5)
	if err != nil {
		return nil, err
	}
	return &Suggestions{Suggested: suggested, Recent: recent}, nil
}
