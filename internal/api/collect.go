package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type monthlyRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required"`
}

type dailyRequest struct {
	Year  int `json:"year" binding:"required"`
	Month int `json:"month" binding:"required"`
	Day   int `json:"day" binding:"required"`
}

func (s *Server) collectMonthly(c *gin.Context) {
	var req monthlyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	res, err := s.Collector.CollectMonthly(c.Request.Context(), req.Year, req.Month)
	if err != nil {
		s.Log.Error("monthly collect failed", zap.Int("year", req.Year), zap.Int("month", req.Month), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "collect failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) collectDaily(c *gin.Context) {
	var req dailyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	res, err := s.Collector.CollectDaily(c.Request.Context(), req.Year, req.Month, req.Day)
	if err != nil {
		s.Log.Error("daily collect failed", zap.Int("year", req.Year), zap.Int("month", req.Month), zap.Int("day", req.Day), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "collect failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}
