package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/raushankrgupta/wardrobe-ai-backend/classifier"
	"github.com/raushankrgupta/wardrobe-ai-backend/models"
	"github.com/raushankrgupta/wardrobe-ai-backend/utils"
	"github.com/raushankrgupta/wardrobe-ai-backend/wardrobe"
)

// Wardrobe is the shared service instance, wired in main.
var Wardrobe *wardrobe.Service

// AnalyzeRequest represents the request body for image analysis
type AnalyzeRequest struct {
	Image string `json:"image"` // base64-encoded
}

// AnalyzeHandler runs the classifying step: classify the photo and return
// the analysis together with up to 3 pairing candidates from the user's
// wardrobe. Nothing is persisted until the user confirms.
func AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Analyze API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	analysis, err := Wardrobe.Analyze(r.Context(), userID, req.Image)
	switch {
	case errors.Is(err, wardrobe.ErrNoImage):
		utils.RespondError(w, &logMessageBuilder, "An image is required", http.StatusBadRequest)
		return
	case errors.Is(err, classifier.ErrAnalysisUnavailable):
		utils.RespondError(w, &logMessageBuilder, "Analysis unavailable", http.StatusServiceUnavailable)
		return
	case err != nil:
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Analysis failed: %v", err))
		utils.RespondError(w, nil, "Failed to analyze image", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Classified as %s/%s, seeking %s",
		analysis.Result.ClothingType, analysis.Result.ClothingCategory, analysis.SoughtCategory))

	for i := range analysis.CompatibleItems {
		analysis.CompatibleItems[i].ImageURL = utils.PresignImageURL(r.Context(), analysis.CompatibleItems[i].ImageURL)
	}

	utils.RespondJSON(w, http.StatusOK, analysis)
}

// AddItemHandler runs the persisting step once the user has confirmed the
// analysis: create the item record, upload the photo, attach the image and
// write the global detail record.
func AddItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Add Item API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Error parsing form data", http.StatusBadRequest)
		return
	}

	var analysis models.AiResponse
	if err := json.Unmarshal([]byte(r.FormValue("analysis")), &analysis); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid or missing analysis field", http.StatusBadRequest)
		return
	}

	var compatibleIDs []string
	if raw := r.FormValue("compatible_ids"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &compatibleIDs); err != nil {
			utils.RespondError(w, &logMessageBuilder, "Invalid compatible_ids field", http.StatusBadRequest)
			return
		}
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "An image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	item, err := Wardrobe.Persist(r.Context(), wardrobe.PersistRequest{
		UserID:        userID,
		Analysis:      &analysis,
		CompatibleIDs: compatibleIDs,
		Image:         file,
		ImageExt:      filepath.Ext(header.Filename),
		ImageMime:     header.Header.Get("Content-Type"),
	})
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Ingestion failed: %v", err))
		utils.RespondError(w, nil, "Failed to add item to wardrobe", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Added item %s to wardrobe", item.ID.Hex()))

	item.ImageURL = utils.PresignImageURL(r.Context(), item.ImageURL)
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Item added to wardrobe",
		"item":    item,
	})
}

// ListItemsResponse represents the wardrobe listing payload
type ListItemsResponse struct {
	Items []models.Item `json:"items"`
	Total int           `json:"total"`
}

// ListItemsHandler returns the user's wardrobe. Pass order=recent for
// most-recent-first; limit caps the result (no pagination cursor).
func ListItemsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	recentFirst := r.URL.Query().Get("order") == "recent"
	limit := int64(100)
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.ParseInt(limitStr, 10, 64); err == nil && l > 0 {
			limit = l
		}
	}

	items, err := Wardrobe.ListItems(r.Context(), userID, recentFirst, limit)
	if err != nil {
		http.Error(w, "Failed to fetch wardrobe", http.StatusInternalServerError)
		return
	}

	for i := range items {
		items[i].ImageURL = utils.PresignImageURL(r.Context(), items[i].ImageURL)
	}

	utils.RespondJSON(w, http.StatusOK, ListItemsResponse{Items: items, Total: len(items)})
}

// ItemDetailsHandler performs the detail-screen lookup: the global record
// by composite id plus the user's items matching its compatible ids.
// A missing detail record is "no data", rendered as an empty payload.
func ItemDetailsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	itemID := r.URL.Query().Get("item_id")
	if itemID == "" {
		http.Error(w, "item_id is required", http.StatusBadRequest)
		return
	}

	view, err := Wardrobe.ItemDetails(r.Context(), userID, itemID)
	if err != nil {
		http.Error(w, "Failed to fetch item details", http.StatusInternalServerError)
		return
	}
	if view == nil {
		utils.RespondJSON(w, http.StatusOK, wardrobe.ItemDetailsView{CompatibleItems: []models.Item{}})
		return
	}

	view.Details.ImageURL = utils.PresignImageURL(r.Context(), view.Details.ImageURL)
	for i := range view.CompatibleItems {
		view.CompatibleItems[i].ImageURL = utils.PresignImageURL(r.Context(), view.CompatibleItems[i].ImageURL)
	}

	utils.RespondJSON(w, http.StatusOK, view)
}

// SuggestionsHandler serves the home-screen queries: a couple of suggested
// outfits and the most recently added items.
func SuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	suggestions, err := Wardrobe.Suggestions(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to fetch suggestions", http.StatusInternalServerError)
		return
	}

	for i := range suggestions.Suggested {
		suggestions.Suggested[i].ImageURL = utils.PresignImageURL(r.Context(), suggestions.Suggested[i].ImageURL)
	}
	for i := range suggestions.Recent {
		suggestions.Recent[i].ImageURL = utils.PresignImageURL(r.Context(), suggestions.Recent[i].ImageURL)
	}

	utils.RespondJSON(w, http.StatusOK, suggestions)
}
