package transport_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phanxgames/shapetree"
	"github.com/phanxgames/shapetree/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*transport.TreeRegistry, http.Handler) {
	t.Helper()
	registry := transport.NewTreeRegistry()
	router, err := transport.NewRouter(registry, slog.DiscardHandler)
	require.NoError(t, err)
	return registry, router
}

func TestPostUpdatesAppliesAndReturnsNewNodes(t *testing.T) {
	_, router := newTestRouter(t)

	body, err := json.Marshal(shapetree.TreeUpdate{
		Updates: []shapetree.NodeUpdate{
			{
				Target: 0,
				Content: shapetree.NodeContent{
					Kind:  shapetree.ContentShape,
					Shape: shapetree.Shape{Kind: shapetree.ShapeCircle, Radius: 1},
				},
			},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/trees/7/updates", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var responses []shapetree.NodeUpdateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &responses))
	require.Len(t, responses, 1)
	assert.Empty(t, responses[0].NewNodes)
}

func TestPostUpdatesInvalidTargetReturns404(t *testing.T) {
	_, router := newTestRouter(t)

	body, err := json.Marshal(shapetree.TreeUpdate{
		Updates: []shapetree.NodeUpdate{
			{
				Target:  99,
				Content: shapetree.NodeContent{Kind: shapetree.ContentShape, Shape: shapetree.Shape{Kind: shapetree.ShapeEmpty}},
			},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/trees/1/updates", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostUpdatesMalformedBodyReturns400(t *testing.T) {
	_, router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/trees/1/updates", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDebugReportsNodeCount(t *testing.T) {
	registry, router := newTestRouter(t)
	registry.Describe(1) // force lazy creation so the dump is deterministic

	req := httptest.NewRequest(http.MethodGet, "/trees/1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var dump transport.Debug
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dump))
	assert.Equal(t, 1, dump.NodeCount)
}
