package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"paperdesk/internal/ai"
	"paperdesk/internal/models"
)

type recommendRequest struct {
	Keywords string `json:"keywords" binding:"required"`
}

func (s *Server) recommend(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if s.LLM == nil || !s.LLM.Enabled() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "llm not configured"})
		return
	}

	var papers []models.Paper
	if err := s.DB.
		Select("id", "title", "img_link", "like_num", "github_num", "publish_time").
		Where("title IS NOT NULL AND title <> ''").
		Order("month desc, title asc").
		Find(&papers).Error; err != nil {
		s.Log.Error("title listing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	entries := make([]ai.TitleEntry, 0, len(papers))
	index := make(map[string]models.Paper, len(papers))
	for _, p := range papers {
		entries = append(entries, ai.TitleEntry{ID: p.ID, Title: p.Title})
		index[p.ID] = p
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 120*time.Second)
	defer cancel()

	suggestions, err := s.LLM.Suggest(ctx, req.Keywords, entries)
	if err != nil {
		// Retry exhaustion degrades to an empty result, same as the summary flow.
		s.Log.Warn("recommendation failed", zap.Error(err))
		c.JSON(http.StatusOK, []gin.H{})
		return
	}

	out := make([]gin.H, 0, len(suggestions))
	for _, sg := range suggestions {
		paper, ok := index[sg.ArxivID]
		if !ok {
			// The model referenced an id we never scraped; skip it rather
			// than failing the whole response.
			continue
		}
		out = append(out, gin.H{
			"arxiv_id":      sg.ArxivID,
			"title":         sg.Title,
			"suggest_score": sg.SuggestScore,
			"img_link":      paper.ImgLink,
			"like_num":      paper.LikeNum,
			"github_num":    paper.GithubNum,
			"publish_time":  paper.PublishTime,
		})
	}
	c.JSON(http.StatusOK, out)
}
