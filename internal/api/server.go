package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"paperdesk/internal/ai"
	"paperdesk/internal/arxiv"
	"paperdesk/internal/auth"
	"paperdesk/internal/scraper"
	"paperdesk/internal/summarize"
)

type Server struct {
	DB         *gorm.DB
	Collector  *scraper.Collector
	Arxiv      *arxiv.Client
	LLM        *ai.Client
	Summarizer *summarize.Summarizer
	Tokens     auth.TokenCodec
	Log        *zap.Logger
	PDFDir     string
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	ag := r.Group("/auth")
	ag.POST("/register", s.register)
	ag.POST("/login", s.login)
	ag.POST("/logout", auth.Middleware(s.Tokens), s.logout)

	api := r.Group("/api", auth.Middleware(s.Tokens))
	api.POST("/collect/monthly", s.collectMonthly)
	api.POST("/collect/daily", s.collectDaily)
	api.POST("/query", s.queryPapers)
	api.POST("/assist/read", s.assistRead)
	api.POST("/recommend", s.recommend)
	api.GET("/pdf/:filename", s.servePDF)
	api.GET("/history", s.history)
}

// RequestLogger tags each request with a uuid and logs it on completion.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
