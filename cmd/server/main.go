package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tekstlab/leesmeter/internal/adapters"
	"github.com/tekstlab/leesmeter/internal/analysis"
	"github.com/tekstlab/leesmeter/internal/cache"
	"github.com/tekstlab/leesmeter/internal/config"
	"github.com/tekstlab/leesmeter/internal/database"
	"github.com/tekstlab/leesmeter/internal/errors"
	"github.com/tekstlab/leesmeter/internal/lexicon"
	"github.com/tekstlab/leesmeter/internal/middleware"
	"github.com/tekstlab/leesmeter/internal/monitoring"
	"github.com/tekstlab/leesmeter/internal/ratelimit"
	"github.com/tekstlab/leesmeter/internal/security"
)

func main() {
	// Structured logging setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// The lexicon and calibration are required: without them every
	// score would be wrong, so failure to load is fatal.
	lex, err := lexicon.Load(cfg.Lexicon.Dir)
	if err != nil {
		slog.Error("Failed to load lexicon", "dir", cfg.Lexicon.Dir, "error", err)
		os.Exit(1)
	}
	slog.Info("Lexicon loaded", "dir", cfg.Lexicon.Dir, "entries", lex.Entries())

	scoringCfg, err := analysis.LoadScoringConfig(cfg.Scoring.ConfigPath)
	if err != nil {
		slog.Error("Failed to load scoring configuration", "path", cfg.Scoring.ConfigPath, "error", err)
		os.Exit(1)
	}

	db, err := database.NewDB(cfg.Server.DataDir)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := database.NewRepository(db)

	annotator := adapters.NewHTTPAnnotator(cfg.Annotator.URL, cfg.Annotator.Timeout)
	analyzer := analysis.NewAnalyzer(lex, scoringCfg)

	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()

	srv := &Server{
		cfg:       cfg,
		annotator: annotator,
		analyzer:  analyzer,
		repo:      repo,
		db:        db,
		metrics:   appMetrics,
		logger:    appLogger,
	}

	r := gin.New()

	r.Use(monitoring.MonitoringMiddleware(appMetrics, appLogger))
	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	r.Use(middleware.Compression(middleware.DefaultCompressionConfig()))
	r.Use(security.SecurityHeadersMiddleware())
	r.Use(security.BodyLimitMiddleware(cfg.Server.MaxBodyBytes))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	limiter := ratelimit.NewRateLimiter(ratelimit.Config{
		IPLimitPerMin:   cfg.RateLimit.IPLimitPerMin,
		BurstMultiplier: cfg.RateLimit.BurstMultiplier,
	}, appMetrics)
	r.Use(limiter.IPRateLimitMiddleware())

	appCache := cache.NewCache(cfg.Cache.TTL)
	r.Use(appCache.Middleware(appMetrics, "/api/v1/analyze", "/api/v1/analyze/annotated"))

	api := r.Group("/api/v1")
	{
		api.POST("/analyze", srv.handleAnalyze)
		api.POST("/analyze/annotated", srv.handleAnalyzeAnnotated)
		api.GET("/history", srv.handleHistory)
		api.GET("/render/:id", srv.handleRender)
		api.GET("/health", srv.handleHealth)
		api.GET("/ready", srv.handleReady)

		api.GET("/metrics", func(c *gin.Context) {
			c.JSON(http.StatusOK, appMetrics.GetStats())
		})

		api.GET("/cache/stats", func(c *gin.Context) {
			c.JSON(http.StatusOK, appCache.Stats())
		})

		api.GET("/pools/database", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"pool":  "database",
				"stats": db.GetPoolStats(),
			})
		})
	}

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		slog.Info("Starting server", "port", cfg.Server.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}
