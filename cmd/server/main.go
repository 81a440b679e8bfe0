package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"paperdesk/internal/ai"
	"paperdesk/internal/api"
	"paperdesk/internal/arxiv"
	"paperdesk/internal/auth"
	"paperdesk/internal/config"
	"paperdesk/internal/db"
	"paperdesk/internal/scraper"
	"paperdesk/internal/storage"
	"paperdesk/internal/summarize"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config load failed", zap.Error(err))
	}

	gdb, err := db.Connect(cfg.DSN())
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}

	var mirror *storage.MinioStore
	if cfg.MinIOEnabled {
		mirror, err = storage.NewMinioStore(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOSecure, cfg.MinIOBucket)
		if err != nil {
			logger.Fatal("minio connect failed", zap.Error(err))
		}
	}

	fetcher := scraper.NewFetcher(cfg.HTTPTimeout)
	collector := scraper.NewCollector(gdb, fetcher, cfg.ScrapeBaseURL, logger)
	arxivClient := arxiv.NewClient(cfg.ArxivBaseURL, cfg.PDFDir, cfg.HTTPTimeout, logger, mirror)

	var llmClient *ai.Client
	if cfg.LLMAPIKey != "" {
		llmClient = ai.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	}
	summarizer, err := summarize.NewSummarizer()
	if err != nil {
		logger.Fatal("summarize graph init failed", zap.Error(err))
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.CORSMiddleware())
	r.Use(api.RequestLogger(logger))

	srv := &api.Server{
		DB:         gdb,
		Collector:  collector,
		Arxiv:      arxivClient,
		LLM:        llmClient,
		Summarizer: summarizer,
		Tokens:     auth.TokenCodec{Key: []byte(cfg.JWTSecret), TTL: cfg.TokenTTL},
		Log:        logger,
		PDFDir:     cfg.PDFDir,
	}
	srv.RegisterRoutes(r)

	logger.Info("listening", zap.String("addr", cfg.Addr))
	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      180 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := httpSrv.ListenAndServe(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
