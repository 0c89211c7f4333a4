package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/statsight/sportsdash/internal/providers"
	"github.com/statsight/sportsdash/internal/services"
	"github.com/statsight/sportsdash/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type routerFixture struct {
	engine   *gin.Engine
	sports   *httptest.Server
	gemini   *httptest.Server
	cacheDir string
}

func newRouterFixture(t *testing.T, generalMax, aiMax int) *routerFixture {
	t.Helper()

	sportsUpstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"response": []any{
				map[string]any{
					"team": map[string]any{"name": "Yankees"},
					"statistics": map[string]any{
						"batting": map[string]any{"ops": 0.75},
					},
				},
			},
		})
	}))
	t.Cleanup(sportsUpstream.Close)

	geminiUpstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{
				map[string]any{
					"content": map[string]any{
						"parts": []any{map[string]any{"text": "stub answer"}},
					},
				},
			},
		})
	}))
	t.Cleanup(geminiUpstream.Close)

	logger := logrus.New()
	cacheDir := t.TempDir()
	reportsDir := t.TempDir()

	cache, err := services.NewFileCache(cacheDir, 6*time.Hour, logger)
	require.NoError(t, err)

	client := providers.NewClient(2*time.Second, 100, logger)
	chainCfg := providers.ChainConfig{APIKey: "test-key", BaseballBaseURL: sportsUpstream.URL}

	engine := gin.New()
	SetupRoutes(engine, Deps{
		Config:         &config.Config{ReportsDir: reportsDir},
		Logger:         logger,
		DataService:    services.NewDataService(client, cache, chainCfg, logger),
		Client:         client,
		ChainCfg:       chainCfg,
		AIService:      services.NewAIService("test-key", geminiUpstream.URL, "gemini-pro", reportsDir, logger),
		GeneralLimiter: services.NewRateLimiter(generalMax, time.Minute),
		AILimiter:      services.NewRateLimiter(aiMax, time.Minute),
	})

	return &routerFixture{engine: engine, sports: sportsUpstream, gemini: geminiUpstream, cacheDir: cacheDir}
}

func (f *routerFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHealthEndpoint(t *testing.T) {
	f := newRouterFixture(t, 100, 20)

	w := f.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListSportsEnumeratesCatalog(t *testing.T) {
	f := newRouterFixture(t, 100, 20)

	w := f.do(http.MethodGet, "/api/sports", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	list, ok := body["sports"].([]any)
	require.True(t, ok)
	assert.Len(t, list, 5)
}

func TestGetDataEnvelopeShape(t *testing.T) {
	f := newRouterFixture(t, 100, 20)

	w := f.do(http.MethodGet, "/api/data/baseball?season=2024", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Contains(t, body, "data")
	assert.Equal(t, false, body["cached"])
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, "api", body["source"])
}

func TestGetDataSecondRequestIsCached(t *testing.T) {
	f := newRouterFixture(t, 100, 20)

	first := f.do(http.MethodGet, "/api/data/baseball?season=2024", "")
	require.Equal(t, http.StatusOK, first.Code)

	second := f.do(http.MethodGet, "/api/data/baseball?season=2024", "")
	require.Equal(t, http.StatusOK, second.Code)

	body := decodeBody(t, second)
	assert.Equal(t, true, body["cached"])
	assert.Equal(t, "cache", body["source"])
}

func TestUnsupportedSportIs404WithOptions(t *testing.T) {
	f := newRouterFixture(t, 100, 20)

	w := f.do(http.MethodGet, "/api/data/cricket", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "sport_not_supported", body["error"])
	message, _ := body["message"].(string)
	for _, name := range []string{"baseball", "basketball", "football", "nfl", "f1"} {
		assert.Contains(t, message, name)
	}
}

func TestGeneralRateLimitReturns429(t *testing.T) {
	f := newRouterFixture(t, 2, 20)

	for i := 0; i < 2; i++ {
		w := f.do(http.MethodGet, "/api/sports", "")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := f.do(http.MethodGet, "/api/sports", "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	body := decodeBody(t, w)
	assert.Equal(t, "rate_limit_exceeded", body["error"])
	retryAfter, ok := body["retry_after_seconds"].(float64)
	require.True(t, ok)
	assert.Greater(t, retryAfter, float64(0))
	assert.LessOrEqual(t, retryAfter, float64(60))
}

func TestAILimitIsIndependentOfGeneralLimit(t *testing.T) {
	f := newRouterFixture(t, 1, 20)

	// Exhaust the general bucket
	require.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/sports", "").Code)
	require.Equal(t, http.StatusTooManyRequests, f.do(http.MethodGet, "/api/sports", "").Code)

	// AI endpoints still run on their own bucket
	w := f.do(http.MethodPost, "/ai/chat", `{"question":"who leads in OPS?"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestChatValidation(t *testing.T) {
	f := newRouterFixture(t, 100, 20)

	w := f.do(http.MethodPost, "/ai/chat", `{"context":{}}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "validation_error", body["error"])
}

func TestChatAnswer(t *testing.T) {
	f := newRouterFixture(t, 100, 20)

	w := f.do(http.MethodPost, "/ai/chat", `{"question":"who leads in OPS?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "stub answer", body["answer"])
}

func TestReportIsDownloadable(t *testing.T) {
	f := newRouterFixture(t, 100, 20)

	w := f.do(http.MethodPost, "/ai/reports/baseball", `{"data":[{"team":"Yankees"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	downloadURL, _ := body["downloadUrl"].(string)
	require.True(t, strings.HasPrefix(downloadURL, "/reports/"))

	download := f.do(http.MethodGet, downloadURL, "")
	assert.Equal(t, http.StatusOK, download.Code)
	assert.Equal(t, "stub answer", download.Body.String())
}

func TestBaseballStatsRequiresTeam(t *testing.T) {
	f := newRouterFixture(t, 100, 20)

	w := f.do(http.MethodGet, "/api/baseball/stats", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "validation_error", body["error"])
}

func TestBaseballTeamsPassthrough(t *testing.T) {
	f := newRouterFixture(t, 100, 20)

	w := f.do(http.MethodGet, "/api/baseball/teams?season=2024", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
}

func TestMissingGeminiKeyIsConfigurationError(t *testing.T) {
	f := newRouterFixture(t, 100, 20)

	logger := logrus.New()
	engine := gin.New()
	cache, err := services.NewFileCache(t.TempDir(), 6*time.Hour, logger)
	require.NoError(t, err)
	client := providers.NewClient(2*time.Second, 100, logger)
	SetupRoutes(engine, Deps{
		Config:         &config.Config{ReportsDir: t.TempDir()},
		Logger:         logger,
		DataService:    services.NewDataService(client, cache, providers.ChainConfig{}, logger),
		Client:         client,
		AIService:      services.NewAIService("", "", "", t.TempDir(), logger),
		GeneralLimiter: services.NewRateLimiter(100, time.Minute),
		AILimiter:      services.NewRateLimiter(20, time.Minute),
	})
	f.engine = engine

	w := f.do(http.MethodPost, "/ai/chat", `{"question":"anything"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "configuration_error", body["error"])
}
