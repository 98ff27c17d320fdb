package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recordhub/internal/bootstrap"
	"recordhub/internal/config"
	"recordhub/internal/testutil"
)

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return &bootstrap.App{
		Config: &config.Config{
			App: config.AppConfig{
				Name:                  "recordhub",
				Env:                   "test",
				GinMode:               gin.TestMode,
				RequestTimeoutSeconds: 5,
			},
			Auth:     config.AuthConfig{JWTSecret: "secret", JWTExpireMinute: 60, CookieName: "token"},
			Database: config.DatabaseConfig{Driver: "sqlite"},
		},
		Logger:    zap.NewNop(),
		DB:        testutil.NewDB(t),
		Redis:     rdb,
		StartedAt: time.Now(),
	}
}

func TestHealthzReportsEachDependency(t *testing.T) {
	router, err := NewRouter(newTestApp(t))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		App          string `json:"app"`
		Dependencies map[string]struct {
			OK bool `json:"ok"`
		} `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "recordhub", body.App)
	assert.True(t, body.Dependencies["sqlite"].OK)
	assert.True(t, body.Dependencies["redis"].OK)
	assert.False(t, body.Dependencies["rabbitmq"].OK)
}

func TestRouterServesPagesAndMetrics(t *testing.T) {
	router, err := NewRouter(newTestApp(t))
	require.NoError(t, err)

	form := url.Values{"name": {"Quimby"}, "age": {"50"}, "address": {"1 Main St"}, "city": {"Springfield"}}
	req := httptest.NewRequest(http.MethodPost, "/mayors", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/mayors/1", strings.NewReader(url.Values{"_method": {"DELETE"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="DELETE",route="/mayors/:id",status="303"}`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
