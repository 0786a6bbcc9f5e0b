package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/careerai/backend/auth"
	"github.com/careerai/backend/config"
	_ "github.com/careerai/backend/docs"
	"github.com/careerai/backend/extract"
	"github.com/careerai/backend/gemini"
	"github.com/careerai/backend/handlers"
	"github.com/careerai/backend/mcp"
	"github.com/careerai/backend/pipeline"
	"github.com/careerai/backend/storage"
	"github.com/careerai/backend/tools"
)

// @title CareerAI API
// @version 1.0
// @description AI-powered career development backend with resume analysis, skill extraction, and personalized learning roadmaps.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@careerai.dev

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load .env file if present (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Set Gin mode based on debug setting
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create context for initialization
	ctx := context.Background()

	// Initialize Firestore client
	log.Println("Initializing Firestore client...")
	firestoreClient, err := storage.NewFirestoreClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}
	defer firestoreClient.Close()
	log.Println("Firestore client initialized successfully")

	// Initialize Cloud Storage client
	log.Println("Initializing Cloud Storage client...")
	storageClient, err := storage.NewCloudStorageClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage client: %v", err)
	}
	defer storageClient.Close()
	log.Println("Cloud Storage client initialized successfully")

	// Initialize Gemini client
	log.Println("Initializing Gemini client...")
	geminiClient, err := gemini.NewClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()
	log.Println("Gemini client initialized successfully")

	// Initialize auth services
	jwtService := auth.NewJWTService(cfg)
	googleAuthService := auth.NewGoogleAuthService(cfg)

	// Wire the analysis and roadmap pipelines
	extractor := extract.NewDocumentExtractor()
	analyzer := pipeline.NewAnalyzer(geminiClient, firestoreClient, firestoreClient)
	generator := pipeline.NewGenerator(geminiClient, firestoreClient)
	roadmapView := pipeline.NewRoadmapView(
		firestoreClient,
		firestoreClient,
		generator,
		cfg.DefaultTargetRole,
		cfg.DefaultCurrentLevel,
	)

	// Create handlers
	resumeHandler := handlers.NewResumeHandler(firestoreClient, storageClient, extractor, analyzer, cfg.MaxUploadBytes())
	roadmapHandler := handlers.NewRoadmapHandler(roadmapView)
	authHandler := handlers.NewAuthHandler(firestoreClient, jwtService, googleAuthService)

	// Create MCP server with tool registry
	toolRegistry := tools.NewToolRegistry()
	toolRegistry.Register(tools.NewExtractSkillsTool(geminiClient))
	toolRegistry.Register(tools.NewCreateRoadmapTool(geminiClient))

	mcpServer := mcp.NewServer(toolRegistry)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// Configure CORS for the web frontend
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Register routes
	router.GET("/health", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Auth endpoints (public)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/google", authHandler.GoogleLogin)
		}

		// Protected auth endpoints (require authentication)
		authProtected := api.Group("/auth")
		authProtected.Use(auth.AuthMiddleware(jwtService))
		{
			authProtected.GET("/profile", authHandler.GetProfile)
			authProtected.PUT("/profile", authHandler.UpdateProfile)
		}

		// Resume and roadmap endpoints (require authentication)
		protected := api.Group("")
		protected.Use(auth.AuthMiddleware(jwtService))
		{
			protected.POST("/resumes", resumeHandler.Upload)
			protected.GET("/resumes", resumeHandler.List)
			protected.GET("/resumes/:id/download", resumeHandler.Download)
			protected.DELETE("/resumes/:id", resumeHandler.Delete)
			protected.POST("/analyze-resume", resumeHandler.Analyze)
			protected.GET("/skills", resumeHandler.Skills)
			protected.GET("/roadmap", roadmapHandler.Get)
			protected.POST("/generate-roadmap", roadmapHandler.Generate)
		}

		// MCP endpoints for external AI agents
		mcpServer.RegisterRoutes(api)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
