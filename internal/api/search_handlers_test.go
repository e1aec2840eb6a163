package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchWines(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/search?q=Canorgue", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)

	hits, ok := env.Data["hits"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, hits)

	first, ok := hits[0].(map[string]any)
	require.True(t, ok)
	name, _ := first["name"].(string)
	assert.Contains(t, name, "Canorgue")
}

func TestSearchWines_ColorFilter(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/search?color=white", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	hits, ok := env.Data["hits"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, hits)

	for _, raw := range hits {
		hit, ok := raw.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "white", hit["color"])
	}
}

func TestSearchWines_NoMatches(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/search?q=zzzzfinnesikke", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.Equal(t, float64(0), env.Data["total"])
}

func TestSearchWines_Facets(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/search?facets=true", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.Contains(t, env.Data, "facets")
}
