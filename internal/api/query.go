package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"paperdesk/internal/models"
)

// queryColumns is the fixed allow-list of selectable and filterable paper
// columns. Caller-supplied names never reach the SQL text unchecked.
var queryColumns = map[string]bool{
	"id":           true,
	"title":        true,
	"authors":      true,
	"abstract":     true,
	"publish_time": true,
	"pdf_link":     true,
	"year":         true,
	"month":        true,
	"like_num":     true,
	"author_num":   true,
	"github_num":   true,
	"comment_num":  true,
	"img_link":     true,
}

type queryRequest struct {
	Fields []string       `json:"fields"`
	Limit  int            `json:"limit"`
	Where  map[string]any `json:"where"`
}

func (s *Server) queryPapers(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	fields := req.Fields
	if len(fields) == 0 {
		fields = []string{"id"}
	}
	for _, f := range fields {
		if !queryColumns[f] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown field"})
			return
		}
	}
	for k := range req.Where {
		if !queryColumns[k] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown field"})
			return
		}
	}

	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	query := s.DB.Model(&models.Paper{}).Select(fields).Limit(limit)
	if len(req.Where) > 0 {
		query = query.Where(req.Where)
	}

	rows := make([]map[string]any, 0)
	if err := query.Find(&rows).Error; err != nil {
		s.Log.Error("paper query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	c.JSON(http.StatusOK, rows)
}
