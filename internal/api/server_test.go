package api

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luberoncellar/cellar-server/internal/auth"
	"github.com/luberoncellar/cellar-server/internal/catalog"
	"github.com/luberoncellar/cellar-server/internal/enrich"
	"github.com/luberoncellar/cellar-server/internal/enrich/vinmonopolet"
	"github.com/luberoncellar/cellar-server/internal/enrich/vivino"
	"github.com/luberoncellar/cellar-server/internal/search"
	"github.com/luberoncellar/cellar-server/internal/service"
	"github.com/luberoncellar/cellar-server/internal/store"
)

// envelope mirrors the success envelope for decoding test responses.
type envelope struct {
	V       int            `json:"v"`
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
	Error   string         `json:"error"`
}

// errorEnvelope mirrors the detailed error envelope.
type errorEnvelope struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

// stubPriceSource returns a fixed product for any query so enrichment
// tests never touch the network.
type stubPriceSource struct{}

func (stubPriceSource) SearchProducts(_ context.Context, query string) ([]vinmonopolet.ProductResult, error) {
	return []vinmonopolet.ProductResult{{
		Code:    "123456",
		Name:    query,
		Price:   229.90,
		Volume:  0.75,
		Country: "Frankrike",
		Buyable: true,
	}}, nil
}

type stubRatingSource struct{}

func (stubRatingSource) SearchWines(_ context.Context, query string) ([]vivino.WineRating, error) {
	return []vivino.WineRating{{
		ID:            1,
		Name:          query,
		Winery:        "Test Winery",
		AverageRating: 4.1,
		RatingsCount:  321,
	}}, nil
}

// setupTestServer creates a test server with all dependencies backed by
// temporary storage.
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	tmpDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := store.New(filepath.Join(tmpDir, "cellar.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cat, err := catalog.Load()
	require.NoError(t, err)
	catalogService := service.NewCatalogService(cat, logger)

	index, err := search.NewSearchIndex(search.Options{
		DataPath: tmpDir,
		Logger:   logger,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	searchService := service.NewSearchService(index, catalogService, logger)
	require.NoError(t, searchService.SyncFromCatalog(context.Background()))

	cache, err := enrich.OpenCache(filepath.Join(tmpDir, "enrich.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	enrichService := enrich.NewService(cache, stubPriceSource{}, stubRatingSource{}, time.Hour, logger)

	// 32 bytes as hex, test key only
	testKeyHex := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	tokenService, err := auth.NewTokenService(testKeyHex, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	services := &Services{
		Auth:       service.NewAuthService(st, tokenService, logger),
		Catalog:    catalogService,
		Pairing:    service.NewPairingService(catalogService, logger),
		Cellar:     service.NewCellarService(st, logger),
		Search:     searchService,
		Enrichment: service.NewEnrichmentService(catalogService, enrichService, logger),
	}

	return NewServer(st, services, logger)
}

// doRequest executes an HTTP request against the test server.
func doRequest(t *testing.T, server *Server, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, EnvelopeVersion, env.V)
	return env
}

func decodeErrorEnvelope(t *testing.T, w *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()

	var env errorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, EnvelopeVersion, env.V)
	assert.False(t, env.Success)
	return env
}

// registerTestUser registers a user through the API and returns the
// access token, refresh token and session ID.
func registerTestUser(t *testing.T, server *Server, email string) (accessToken, refreshToken, sessionID string) {
	t.Helper()

	w := doRequest(t, server, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"email":        email,
		"password":     "kjellerhemmelighet",
		"display_name": "Test User",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "registration failed: %s", w.Body.String())

	env := decodeEnvelope(t, w)
	require.True(t, env.Success)

	accessToken, _ = env.Data["access_token"].(string)
	refreshToken, _ = env.Data["refresh_token"].(string)
	sessionID, _ = env.Data["session_id"].(string)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	require.NotEmpty(t, sessionID)
	return accessToken, refreshToken, sessionID
}

func TestHealthCheck(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "healthy", env.Data["status"])

	components, ok := env.Data["components"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, components, "database")
	assert.Contains(t, components, "catalog")
	assert.Contains(t, components, "search")
}

func TestServer_Routes(t *testing.T) {
	server := setupTestServer(t)

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{
			name:           "health check",
			method:         http.MethodGet,
			path:           "/health",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "list wines",
			method:         http.MethodGet,
			path:           "/api/v1/wines",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "list flavors",
			method:         http.MethodGet,
			path:           "/api/v1/pairing/flavors",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "not found",
			method:         http.MethodGet,
			path:           "/api/v1/nonexistent",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, server, tt.method, tt.path, nil, "")
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestServer_JSONResponse(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/wines", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.NotNil(t, env.Data)
	assert.Empty(t, env.Error)

	assert.Contains(t, env.Data, "wines")
	assert.Contains(t, env.Data, "total")
}
