package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"tradejournal/internal/analysis"
	"tradejournal/internal/config"
	"tradejournal/internal/db"
	"tradejournal/internal/handler"
	"tradejournal/internal/identity"
	"tradejournal/internal/logger"
	gormrepository "tradejournal/internal/repository/gorm"
	"tradejournal/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("TJ_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("TJ_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer dbConn.Close()

	if err := dbConn.SetTimezone(cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := dbConn.AutoMigrate(); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	entrySvc := service.NewEntryService(store, logger)
	settingsSvc := service.NewSettingsService(store, logger)
	columnSvc := service.NewColumnService(store, logger)

	analyzer, err := buildAnalyzer(cfg.Analysis, logger)
	if err != nil {
		logger.Fatal("analysis engine init failed", zap.Error(err))
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())
	engine.Use(identity.Middleware(cfg.Auth))

	healthHandler := &handler.HealthHandler{DB: dbConn}
	healthHandler.Register(engine)
	entriesHandler := &handler.EntriesHandler{Entries: entrySvc}
	entriesHandler.Register(engine)
	settingsHandler := &handler.SettingsHandler{Settings: settingsSvc}
	settingsHandler.Register(engine)
	columnsHandler := &handler.ColumnsHandler{Columns: columnSvc}
	columnsHandler.Register(engine)
	analyticsHandler := &handler.AnalyticsHandler{Entries: entrySvc}
	analyticsHandler.Register(engine)
	analysisHandler := &handler.AnalysisHandler{
		Entries:  entrySvc,
		Analyzer: analyzer,
		Timeout:  cfg.Analysis.Timeout,
		Log:      logger,
	}
	analysisHandler.Register(engine)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

// buildAnalyzer picks the pattern-analysis engine. Gemini needs an API key in
// the environment (GEMINI_API_KEY); a configured gemini provider that cannot
// be built stops startup instead of degrading to the local engine.
func buildAnalyzer(cfg config.AnalysisConfig, logger *zap.Logger) (analysis.Analyzer, error) {
	var client *genai.Client
	if strings.EqualFold(cfg.Provider, "gemini") {
		c, err := genai.NewClient(context.Background(), nil)
		if err != nil {
			return nil, err
		}
		client = c
		logger.Info("gemini analysis enabled", zap.String("model", cfg.Model))
	}
	return analysis.NewAnalyzer(cfg.Provider, cfg.Model, cfg.MaxExamples, client)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization,X-Owner")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
