package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"paperdesk/internal/scraper"
)

func TestCollectMonthlyGuardedPeriod(t *testing.T) {
	s, r := newTestServer(t)
	_, token := seedUser(t, s, "alice")

	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hits++
	}))
	t.Cleanup(ts.Close)
	s.Collector = scraper.NewCollector(s.DB, scraper.NewFetcher(5*time.Second), ts.URL, zap.NewNop())

	w := doJSON(t, r, http.MethodPost, "/api/collect/monthly", token, map[string]int{
		"year": 2022, "month": 4,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Error", decodeBody[map[string]any](t, w)["info"])
	assert.Equal(t, 0, hits)
}

func TestCollectDailyUpstreamFailure(t *testing.T) {
	s, r := newTestServer(t)
	_, token := seedUser(t, s, "alice")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)
	s.Collector = scraper.NewCollector(s.DB, scraper.NewFetcher(5*time.Second), ts.URL, zap.NewNop())

	w := doJSON(t, r, http.MethodPost, "/api/collect/daily", token, map[string]int{
		"year": 2025, "month": 6, "day": 10,
	})
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "collect failed", decodeBody[map[string]string](t, w)["error"])
}

func TestCollectMonthlyInvalidPayload(t *testing.T) {
	s, r := newTestServer(t)
	_, token := seedUser(t, s, "alice")

	w := doJSON(t, r, http.MethodPost, "/api/collect/monthly", token, map[string]int{"year": 2025})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
