// @title           House Preview Backend API
// @version         1.0.0
// @description     Backend API for house preview submissions: customers upload a PNG of their house with optional colours, an SVG overlay and a message, and staff track each submission through its status.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"house-preview-backend/docs"
	"house-preview-backend/internal/config"
	"house-preview-backend/internal/database"
	"house-preview-backend/internal/handlers"
	"house-preview-backend/internal/logging"
	"house-preview-backend/internal/middleware"
	"house-preview-backend/internal/services"
	"house-preview-backend/internal/storage"
	"house-preview-backend/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Point the Swagger UI at the deployed host
	if baseURL, err := url.Parse(cfg.BaseURL); err == nil && baseURL.Host != "" {
		docs.SwaggerInfo.Host = baseURL.Host
		if baseURL.Scheme == "https" {
			docs.SwaggerInfo.Schemes = []string{"https", "http"}
		} else {
			docs.SwaggerInfo.Schemes = []string{"http", "https"}
		}
	}

	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer dbClient.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	err = database.NewMigrator(dbClient.DB()).Run(migrateCtx)
	cancel()
	if err != nil {
		logging.Fatal().Err(err).Msg("migration failed")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	var blobs services.BlobStore
	switch cfg.StorageDriver {
	case config.StorageDriverSupabase:
		supabaseClient, err := supabase.NewClient(cfg)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to initialize Supabase client")
		}
		blobs = supabaseClient.StorageClient()
	default:
		disk, err := storage.NewDiskStore(cfg.StorageLocalRoot, cfg.BaseURL)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to initialize local storage")
		}
		router.Static(storage.PublicPrefix, disk.Root())
		blobs = disk
	}
	logging.Info().Str("driver", cfg.StorageDriver).Msg("blob storage ready")

	previewService := services.NewPreviewService(dbClient, services.NewUploadService(blobs))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	handlers.RegisterRoutes(router, cfg,
		handlers.NewHousePreviewHandler(previewService, cfg.DefaultPerPage, cfg.MaxPerPage),
		handlers.NewCustomerHandler(previewService),
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logging.Info().Str("port", cfg.Port).Str("environment", cfg.Environment).Msg("server starting")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logging.Fatal().Err(err).Msg("failed to start server")
	}
}
