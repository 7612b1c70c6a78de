package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/daybook-labs/daybook-backend/internal/config"
	"github.com/daybook-labs/daybook-backend/internal/database"
	"github.com/daybook-labs/daybook-backend/internal/handlers"
	"github.com/daybook-labs/daybook-backend/internal/middleware"
	"github.com/daybook-labs/daybook-backend/internal/routes"
	"github.com/daybook-labs/daybook-backend/internal/services"
	"github.com/daybook-labs/daybook-backend/internal/store"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Load configuration; a missing required credential is fatal
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	// Supabase store client and repositories
	storeClient, err := store.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.APITimeout)
	if err != nil {
		log.Fatal("Failed to create store client: ", err)
	}
	snippetRepo := store.NewSnippetRepository(storeClient)
	journalRepo := store.NewJournalRepository(storeClient)

	// Upstream AI clients
	if cfg.HuggingFaceToken == "" {
		log.Println("⚠️  WARNING: HUGGINGFACE_TOKEN not set. Sentiment calls may be rejected and will score 0.0.")
	}
	classifier := services.NewSentimentClassifier(cfg.HuggingFaceToken, cfg.APITimeout)
	generator := services.NewJournalGenerator(cfg.GeminiAPIKey, cfg.APITimeout, classifier)

	snippetService := services.NewSnippetService(snippetRepo)
	journalService := services.NewJournalService(journalRepo, snippetRepo, generator)
	h := handlers.New(snippetService, journalService)

	// Redis backs the per-user ceiling on the summary endpoint; optional
	var summaryLimiter *middleware.SummaryRateLimiter
	if cfg.RedisURI != "" {
		log.Printf("Connecting to Redis...")
		redisClient, err := database.ConnectRedis(cfg.RedisURI)
		if err != nil {
			log.Fatal("Failed to connect to Redis: ", err)
		}
		defer redisClient.Close()
		log.Println("✅ Connected to Redis")

		summaryLimiter, err = middleware.NewSummaryRateLimiter(redisClient, cfg.PerUserRateLimit, cfg.GlobalRateLimit)
		if err != nil {
			log.Fatal("Invalid rate limit configuration: ", err)
		}
	} else {
		log.Println("REDIS_URI not set; per-user rate ceilings disabled")
		summaryLimiter, err = middleware.NewSummaryRateLimiter(nil, cfg.PerUserRateLimit, cfg.GlobalRateLimit)
		if err != nil {
			log.Fatal("Invalid rate limit configuration: ", err)
		}
	}

	// Setup router
	r := chi.NewRouter()
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Health check (no rate limit)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	routes.SetupRoutes(r, h, summaryLimiter.Middleware)

	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /snippets")
	log.Println("  GET  /snippets/{userID}")
	log.Println("  POST /snippets/with-summary")
	log.Println("  POST /journals")
	log.Println("  GET  /journals/{userID}")
	log.Println("  GET  /journals/{userID}/{date}")

	log.Printf("🚀 Daybook backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
