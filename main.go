package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/raushankrgupta/wardrobe-ai-backend/api"
	"github.com/raushankrgupta/wardrobe-ai-backend/classifier"
	"github.com/raushankrgupta/wardrobe-ai-backend/config"
	"github.com/raushankrgupta/wardrobe-ai-backend/utils"
	"github.com/raushankrgupta/wardrobe-ai-backend/wardrobe"
)

func main() {
	config.LoadConfig()

	// Initialize MongoDB
	if err := utils.ConnectMongo(config.MongoURI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	// Initialize S3
	if err := utils.InitS3(); err != nil {
		log.Fatalf("Failed to initialize S3: %v", err)
	}

	// Wire the wardrobe service
	ai, err := classifier.NewFromConfig()
	if err != nil {
		log.Fatalf("Failed to configure classifier: %v", err)
	}
	api.Wardrobe = wardrobe.NewService(wardrobe.NewMongoItemStore(), wardrobe.NewS3BlobStore(), ai)

	// CORS Middleware
	corsMiddleware := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}

	// Auth routes
	http.HandleFunc("/auth/signup", corsMiddleware(api.SignupHandler))
	http.HandleFunc("/auth/verify-otp", corsMiddleware(api.VerifyOTPHandler))
	http.HandleFunc("/auth/login", corsMiddleware(api.LoginHandler))
	http.HandleFunc("/auth/forgot-password", corsMiddleware(api.ForgotPasswordHandler))
	http.HandleFunc("/auth/reset-password", corsMiddleware(api.ResetPasswordHandler))
	http.HandleFunc("/auth/google/login", corsMiddleware(api.GoogleLoginHandler))
	http.HandleFunc("/auth/google/callback", corsMiddleware(api.GoogleCallbackHandler))

	// Wardrobe routes (require a signed-in user)
	http.HandleFunc("/wardrobe/analyze", corsMiddleware(api.AuthMiddleware(api.AnalyzeHandler)))
	http.HandleFunc("/wardrobe/items", corsMiddleware(api.AuthMiddleware(wardrobeItemsHandler)))
	http.HandleFunc("/wardrobe/item-details", corsMiddleware(api.AuthMiddleware(api.ItemDetailsHandler)))
	http.HandleFunc("/wardrobe/suggestions", corsMiddleware(api.AuthMiddleware(api.SuggestionsHandler)))

	port := config.Port
	fmt.Printf("Server starting on port %s...\n", port)
	if err := http.ListenAndServe(":"+port, utils.LatencyMiddleware(http.DefaultServeMux)); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// wardrobeItemsHandler dispatches /wardrobe/items by method: GET lists the
// wardrobe, POST runs the confirmed ingestion.
func wardrobeItemsHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		api.ListItemsHandler(w, r)
	case http.MethodPost:
		api.AddItemHandler(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
