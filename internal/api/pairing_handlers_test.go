package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFlavors(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/pairing/flavors", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	flavors, ok := env.Data["flavors"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, flavors)
}

func TestMatchFlavor_Success(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/pairing/flavors/flavor-pepperbiff/matches", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	matches, ok := env.Data["matches"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, matches)
	assert.Equal(t, float64(len(matches)), env.Data["total"])

	// Matches come back best first with score and label attached.
	first, ok := matches[0].(map[string]any)
	require.True(t, ok)
	assert.Positive(t, first["score"])
	assert.NotEmpty(t, first["label"])
}

func TestMatchFlavor_ColorFilter(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/pairing/flavors/flavor-salt-potetgull/matches?color=white", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	matches, ok := env.Data["matches"].([]any)
	require.True(t, ok)

	for _, raw := range matches {
		match, ok := raw.(map[string]any)
		require.True(t, ok)
		wine, ok := match["wine"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "white", wine["color"])
	}
}

func TestMatchFlavor_UnknownFlavor(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/pairing/flavors/flavor-finnes-ikke/matches", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	env := decodeErrorEnvelope(t, w)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestMatchProfile_AdHoc(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodPost, "/api/v1/pairing/match", map[string]any{
		"name": "Grillkveld",
		"profile": map[string]int{
			"salty":  2,
			"acidic": 2,
			"creamy": 1,
			"spicy":  4,
			"smoky":  4,
			"herbal": 2,
			"sweet":  1,
		},
		"preferred_wine_colors": []string{"red"},
		"wine_characteristics":  []string{"peppery", "spicy"},
		"color":                 "all",
	}, "")

	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	matches, ok := env.Data["matches"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, matches)
}

func TestMatchFood_Success(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/pairing/food?q=laks", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	matches, ok := env.Data["matches"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, matches)

	first, ok := matches[0].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, first, "wine")
	assert.Contains(t, first, "pairing")
}

func TestMatchFood_EmptyTermReturnsAllPairings(t *testing.T) {
	server := setupTestServer(t)

	// Omitted and explicitly empty q behave the same: every pairing comes back.
	for _, path := range []string{"/api/v1/pairing/food", "/api/v1/pairing/food?q="} {
		w := doRequest(t, server, http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		env := decodeEnvelope(t, w)
		matches, ok := env.Data["matches"].([]any)
		require.True(t, ok)
		assert.NotEmpty(t, matches)
		assert.Equal(t, float64(len(matches)), env.Data["total"])
	}
}

func TestPopularDishes(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/pairing/dishes?limit=5", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	dishes, ok := env.Data["dishes"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, dishes)
	assert.LessOrEqual(t, len(dishes), 5)

	// Descending by pairing count.
	var prev float64 = 1 << 30
	for _, raw := range dishes {
		dish, ok := raw.(map[string]any)
		require.True(t, ok)
		count, ok := dish["count"].(float64)
		require.True(t, ok)
		assert.LessOrEqual(t, count, prev)
		prev = count
	}
}

func TestListFoodCategories(t *testing.T) {
	server := setupTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/pairing/categories", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	categories, ok := env.Data["categories"].([]any)
	require.True(t, ok)
	assert.Contains(t, categories, "fish")
	assert.Contains(t, categories, "cheese")
}
