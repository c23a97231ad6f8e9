// File: mechanicbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mechanicbook/config"
	"mechanicbook/cron"
	"mechanicbook/database"
	jobsRepo "mechanicbook/database/repository/jobs"
	"mechanicbook/handlers"
	"mechanicbook/middleware"
	"mechanicbook/routes"
	"mechanicbook/services/catalog"
	"mechanicbook/services/clarify"
	"mechanicbook/services/jobs"
	"mechanicbook/services/notification"
	"mechanicbook/services/postcode"
	"mechanicbook/services/vehicle"
	"mechanicbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	cfg := config.AppConfig

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	// job store.
	health := &utils.HealthChecker{Store: cfg.JobStore}
	var repo jobsRepo.JobRepository
	switch cfg.JobStore {
	case config.StorePostgres, config.StoreSQLite:
		db, err := database.InitSQL(logger)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to open %s job store: %v", cfg.JobStore, err)
		}
		defer database.CloseSQL(db)
		if repo, err = jobsRepo.NewGormJobRepo(db); err != nil {
			logger.Sugar().Fatalf("main: failed to prepare jobs table: %v", err)
		}
		health.SQL = db
	default:
		client, err := database.InitDB()
		if err != nil {
			logger.Sugar().Fatalf("main: %v", err)
		}
		defer database.CloseDB(context.Background())
		if repo, err = jobsRepo.NewMongoJobRepo(client, cfg.DatabaseName); err != nil {
			logger.Sugar().Fatalf("main: failed to prepare jobs collection: %v", err)
		}
		health.Mongo = client
	}

	// lookup cache and SMS queue.
	cache := utils.InitCache()
	health.Redis = cache
	health.StartHealthMonitor(rootCtx, 30*time.Second)

	var queue *asynq.Client
	if cfg.SMSAsync && cfg.TwilioConfigured() {
		queue = asynq.NewClient(cron.QueueRedisOpt())
		defer queue.Close()
		cron.InitSMSWorker(rootCtx, notification.NewTwilioNotifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber))
	}

	// services.
	vehicleService := &vehicle.DefaultVehicleService{
		Mode:   cfg.DVLAMode,
		DVLA:   vehicle.NewDVLAClient(cfg.DVLAAPIURL, cfg.DVLAAPIKey),
		Cache:  &utils.JSONCache{Client: cache, Prefix: vehicle.CachePrefix, TTL: cfg.LookupCacheTTL},
		Logger: logger,
	}
	postcodeService := postcode.NewPostcodeService(cfg.PostcodesAPIURL,
		&utils.JSONCache{Client: cache, Prefix: postcode.CachePrefix, TTL: cfg.LookupCacheTTL}, logger)

	var summarizer clarify.Summarizer
	if cfg.GeminiAPIKey != "" {
		gemini, err := clarify.NewGeminiSummarizer(rootCtx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("main: Gemini unavailable, clarify summaries use raw notes", zap.Error(err))
		} else {
			defer gemini.Close()
			summarizer = gemini
		}
	}
	clarifyService := clarify.NewClarifyService(summarizer, logger)

	notifier := notification.NewSMSNotifier(cfg, queue, logger)
	jobService := jobs.NewJobService(repo, notifier, logger)

	if !cfg.AdminConfigured() {
		logger.Warn("main: ADMIN_API_KEY is not configured, admin routes will return 500")
	}

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewCatalogHandler(catalog.NewFileCatalog(cfg.CatalogPath)),
		handlers.NewLookupHandler(vehicleService, postcodeService),
		handlers.NewClarifyHandler(clarifyService),
		handlers.NewJobsHandler(jobService),
		handlers.NewAdminHandler(jobService),
	)
	handlerBundle.AdminAPIKey = cfg.AdminAPIKey
	handlerBundle.AdminAPIKeyHash = cfg.AdminAPIKeyHash

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s (store=%s, dvla=%s)...", srv.Addr, cfg.JobStore, cfg.DVLAMode)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
