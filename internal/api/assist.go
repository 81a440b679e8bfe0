package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"paperdesk/internal/arxiv"
	"paperdesk/internal/models"
	"paperdesk/internal/pdftext"
	"paperdesk/internal/summarize"
)

type assistRequest struct {
	ArxivID string `json:"arxiv_id" binding:"required"`
}

// assistRead downloads the paper's PDF, extracts the opening pages, runs the
// structured summary flow and records one history entry for the caller.
func (s *Server) assistRead(c *gin.Context) {
	var req assistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	user, ok := s.currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 120*time.Second)
	defer cancel()

	info, err := s.Arxiv.Download(ctx, req.ArxivID, true)
	if err != nil {
		if errors.Is(err, arxiv.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "arxiv id not found"})
			return
		}
		s.Log.Error("pdf download failed", zap.String("arxiv_id", req.ArxivID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "download failed"})
		return
	}

	text, err := pdftext.ExtractRange(info.PDFPath, 0, 10)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Extraction failed"})
		return
	}

	analysis, err := s.Summarizer.Summarize(ctx, summarize.Input{Text: text, LLM: s.LLM})
	if err != nil {
		// The analysis contract degrades to an empty summary, never an error.
		s.Log.Warn("summarize failed", zap.String("arxiv_id", req.ArxivID), zap.Error(err))
		analysis = summarize.Analysis{}
	}

	s.recordHistory(user, req.ArxivID, analysis)

	c.JSON(http.StatusOK, gin.H{
		"pdf_url":       info.PDFURL,
		"analysis":      analysis,
		"download_info": info,
	})
}

// recordHistory snapshots the paper's display fields when the paper is known;
// an identifier that was never scraped leaves no history row.
func (s *Server) recordHistory(user models.User, arxivID string, analysis summarize.Analysis) {
	var paper models.Paper
	if err := s.DB.First(&paper, "id = ?", arxivID).Error; err != nil {
		return
	}
	analysisJSON, _ := json.Marshal(analysis)
	entry := models.History{
		UserID:     user.ID,
		ArxivID:    arxivID,
		Title:      paper.Title,
		LikeNum:    paper.LikeNum,
		GithubNum:  paper.GithubNum,
		ImgLink:    paper.ImgLink,
		Analysis:   analysisJSON,
		AccessTime: time.Now().UTC(),
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		s.Log.Warn("history insert failed", zap.String("arxiv_id", arxivID), zap.Error(err))
	}
}

func (s *Server) history(c *gin.Context) {
	user, ok := s.currentUser(c)
	if !ok {
		return
	}

	rows := make([]models.History, 0)
	if err := s.DB.Where("user_id = ?", user.ID).
		Order("access_time desc").
		Limit(50).
		Find(&rows).Error; err != nil {
		s.Log.Error("history query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, rows)
}
