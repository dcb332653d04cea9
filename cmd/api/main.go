package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/inmengwi/wine-collector/internal/ai"
	"github.com/inmengwi/wine-collector/internal/auth"
	"github.com/inmengwi/wine-collector/internal/db"
	"github.com/inmengwi/wine-collector/internal/middleware"
	"github.com/inmengwi/wine-collector/internal/recommend"
	"github.com/inmengwi/wine-collector/internal/scan"
	"github.com/inmengwi/wine-collector/internal/storage"
	"github.com/inmengwi/wine-collector/internal/wine"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE ─────────────────────────
	// Falls back to mock URLs when R2 credentials are absent.
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("R2 init failed:", err)
	}

	// ───────────────────────── AI ─────────────────────────
	aiService := ai.NewService(ai.VisionConfigFromEnv(), ai.TextConfigFromEnv())

	// ───────────────────────── AUTH ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// ───────────────────────── REPOS ─────────────────────────
	catalogRepo := wine.NewPostgresCatalogRepository(pgDB)
	cellarRepo := wine.NewPostgresCellarRepository(pgDB)
	sessionRepo := scan.NewPostgresRepository(pgDB)
	recommendCache := recommend.NewPostgresCacheRepository(pgDB)

	// ───────────────────────── SERVICES ─────────────────────────
	wineService := wine.NewService(catalogRepo, cellarRepo)
	scanService := scan.NewService(sessionRepo, r2Client, aiService, catalogRepo, cellarRepo)
	recommendService := recommend.NewService(aiService, cellarRepo, recommendCache)

	// ───────────────────────── HANDLERS ─────────────────────────
	wineHandler := wine.NewHandler(wineService)
	scanHandler := scan.NewHandler(scanService)
	recommendHandler := recommend.NewHandler(recommendService)

	// ───────────────────────── SCAN ROUTES ─────────────────────────
	scans := r.Group("/scan")
	scans.Use(middleware.AuthMiddleware())
	{
		scans.POST("", scanHandler.Single)
		scans.POST("/batch", scanHandler.Batch)
		scans.POST("/check", scanHandler.Check)
		scans.POST("/:scan_id/refine", scanHandler.Refine)
	}

	// ───────────────────────── WINE ROUTES ─────────────────────────
	wines := r.Group("/wines")
	wines.Use(middleware.AuthMiddleware())
	{
		wines.POST("", wineHandler.Add)
		wines.GET("", wineHandler.List)
		wines.GET("/:id", wineHandler.Get)
		wines.PATCH("/:id/quantity", wineHandler.UpdateQuantity)
		wines.PATCH("/:id/status", wineHandler.UpdateStatus)
	}

	// ───────────────────────── RECOMMENDATION ROUTES ─────────────────────────
	recommendations := r.Group("/recommendations")
	recommendations.Use(middleware.AuthMiddleware())
	{
		recommendations.POST("", recommendHandler.Get)
	}

	// ───────────────────────── AI SETTINGS ─────────────────────────
	settings := r.Group("/settings/ai")
	settings.Use(middleware.AuthMiddleware(), middleware.RequireRole(auth.RoleAdmin))
	{
		settings.GET("", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"scan":           aiService.ScanModelInfo(),
				"recommendation": aiService.RecommendationModelInfo(),
			})
		})
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("API listening on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
