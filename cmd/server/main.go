package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appfiscal "github.com/Agustinixnova/monotributistapp-sub005/internal/application/fiscal"
	appinflation "github.com/Agustinixnova/monotributistapp-sub005/internal/application/inflation"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/domain/fiscal"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/infrastructure/cache"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/infrastructure/config"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/infrastructure/event"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/infrastructure/logger"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/infrastructure/persistence"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/interfaces/http/handler"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/interfaces/http/middleware"
	"github.com/Agustinixnova/monotributistapp-sub005/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const version = "1.0.0"

// maxRequestBody caps receipt payloads, attachments included, at 4 MiB
const maxRequestBody = 4 << 20

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting server",
		zap.String("name", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	// Month-summary cache: redis when reachable, in-memory otherwise
	cacheFactory := cache.NewSummaryCacheFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithTTL(cfg.Cache.SummaryTTL),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	)
	summaryCache, err := cacheFactory.CreateCache()
	if err != nil {
		log.Fatal("Failed to create summary cache", zap.Error(err))
	}

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Repositories
	receiptRepo := persistence.NewGormReceiptRepository(db.DB)
	monthStatusRepo := persistence.NewGormMonthStatusRepository(db.DB)
	clientRepo := persistence.NewGormClientRepository(db.DB)
	categoryRepo := persistence.NewGormFiscalCategoryRepository(db.DB)
	inflationRepo := persistence.NewGormInflationRecordRepository(db.DB)
	revisionUOW := persistence.NewGormRevisionUnitOfWork(db.DB)

	// Application services
	recat, excl := cfg.Risk.Thresholds()
	thresholds := fiscal.RiskThresholds{Recategorization: recat, Exclusion: excl}

	clientService := appfiscal.NewClientService(clientRepo)
	categoryService := appfiscal.NewCategoryService(categoryRepo)
	receiptService := appfiscal.NewReceiptService(receiptRepo, monthStatusRepo, clientRepo, summaryCache, eventBus)
	revisionService := appfiscal.NewRevisionService(revisionUOW, receiptRepo, monthStatusRepo, summaryCache, eventBus)
	summaryService := appfiscal.NewMonthSummaryService(receiptRepo, monthStatusRepo, summaryCache)
	exposureService := appfiscal.NewExposureService(receiptRepo, categoryRepo, clientRepo, thresholds)
	adjustmentService := appinflation.NewAdjustmentService(inflationRepo)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsCfg),
		middleware.BodyLimit(maxRequestBody),
		middleware.ReviewerID(),
	)

	router.NewRouter(engine).
		Register(handler.NewSystemHandler(version, db)).
		Register(handler.NewClientHandler(clientService)).
		Register(handler.NewCategoryHandler(categoryService)).
		Register(handler.NewReceiptHandler(receiptService)).
		Register(handler.NewRevisionHandler(revisionService)).
		Register(handler.NewSummaryHandler(summaryService)).
		Register(handler.NewExposureHandler(exposureService)).
		Register(handler.NewInflationHandler(adjustmentService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	if closer, ok := summaryCache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Error("Failed to close summary cache", zap.Error(err))
		}
	}

	log.Info("Server stopped")
}
