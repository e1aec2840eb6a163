package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetWinePrice(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/wines/wine-canorgue-rouge/price", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)

	products, ok := env.Data["products"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, products)

	product, ok := products[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 229.90, product["price"])
}

func TestGetWinePrice_CachesResult(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/wines/wine-canorgue-rouge/price", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, false, env.Data["cached"])

	w = doRequest(t, server, http.MethodGet, "/api/v1/wines/wine-canorgue-rouge/price", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	env = decodeEnvelope(t, w)
	assert.Equal(t, true, env.Data["cached"])
}

func TestGetWineRating(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/wines/wine-canorgue-rouge/rating", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	ratings, ok := env.Data["ratings"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, ratings)

	rating, ok := ratings[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 4.1, rating["average_rating"])
}

func TestGetWinePrice_UnknownWine(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/wines/wine-finnes-ikke/price", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	env := decodeErrorEnvelope(t, w)
	assert.Equal(t, "NOT_FOUND", env.Code)
}
