package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/poiesic/triagit/ai/mock"
	"github.com/poiesic/triagit/core"
	"github.com/poiesic/triagit/search"
	"github.com/poiesic/triagit/storage/badger"
	"github.com/poiesic/triagit/triage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, provider *mock.MockProvider) *Server {
	t.Helper()

	reportRepo, keywordRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { keywordRepo.Close(); reportRepo.Close(); backend.Close() })

	pipeline, err := triage.NewPipeline(reportRepo, provider,
		triage.WithRetryPolicy(triage.RetryPolicy{Attempts: 1, Delay: time.Millisecond}))
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	searcher, err := search.NewSearcher(reportRepo, provider)
	require.NoError(t, err)

	return New(pipeline, searcher, reportRepo)
}

func postJSON(t *testing.T, s *Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestSubmitEndpointSuccess(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockClassifier().ClassifyFunc = func(ctx context.Context, description string) (core.Classification, error) {
		return core.Classification{Urgency: core.UrgencyEmergency, Category: "Cardiac"}, nil
	}

	s := newTestServer(t, provider)

	w := postJSON(t, s, "/submit", gin.H{"description": "crushing chest pain and shortness of breath"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Emergency", resp["urgency_level"])
	assert.Equal(t, "Cardiac", resp["category"])
	assert.NotContains(t, resp, "triage_label")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestSubmitEndpointInvalidInput(t *testing.T) {
	s := newTestServer(t, mock.NewMockProvider().(*mock.MockProvider))

	for _, body := range []any{gin.H{"description": "   "}, gin.H{}, "not json"} {
		w := postJSON(t, s, "/submit", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid symptom description.", resp["error"])
	}
}

func TestSubmitEndpointNotHealthRelated(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockRelevanceChecker().IsHealthRelatedFunc = func(ctx context.Context, text string) (bool, error) {
		return false, nil
	}

	s := newTestServer(t, provider)

	w := postJSON(t, s, "/submit", gin.H{"description": "recommend a good sci-fi movie"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Input is not health-related.", resp["error"])
}

func TestSubmitEndpointRateLimited(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockClassifier().ClassifyFunc = func(ctx context.Context, description string) (core.Classification, error) {
		return core.Classification{}, errors.New("429 Too Many Requests: rate limit reached")
	}

	s := newTestServer(t, provider)

	w := postJSON(t, s, "/submit", gin.H{"description": "persistent nosebleeds"})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Currently you have hit the rate limit, so it's not possible.", resp["error"])
}

func TestSubmitEndpointInternalError(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	provider.GetMockClassifier().ClassifyFunc = func(ctx context.Context, description string) (core.Classification, error) {
		return core.Classification{}, errors.New("model exploded")
	}

	s := newTestServer(t, provider)

	w := postJSON(t, s, "/submit", gin.H{"description": "sudden severe abdominal pain"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Internal Server Error", resp["error"])
}

func TestSemanticSearchEndpoint(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	s := newTestServer(t, provider)

	// Seed via submit
	w := postJSON(t, s, "/submit", gin.H{"description": "itchy rash on both forearms"})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, s, "/semantic-search", gin.H{"description": "itchy rash on both forearms"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Matches []struct {
			PageContent string         `json:"pageContent"`
			Metadata    map[string]any `json:"metadata"`
			Score       float32        `json:"score"`
		} `json:"matches"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Matches)
	assert.Equal(t, "itchy rash on both forearms", resp.Matches[0].PageContent)
	assert.InDelta(t, 1.0, float64(resp.Matches[0].Score), 0.01)
	assert.Contains(t, resp.Matches[0].Metadata, "urgency_level")
}

func TestSemanticSearchEndpointBlankQuery(t *testing.T) {
	s := newTestServer(t, mock.NewMockProvider().(*mock.MockProvider))

	w := postJSON(t, s, "/semantic-search", gin.H{"description": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportsEndpointNewestFirst(t *testing.T) {
	provider := mock.NewMockProvider().(*mock.MockProvider)
	s := newTestServer(t, provider)

	for _, desc := range []string{"first report symptoms", "second report symptoms"} {
		w := postJSON(t, s, "/submit", gin.H{"description": desc})
		require.Equal(t, http.StatusOK, w.Code)
		// Distinct persistence timestamps keep the ordering observable
		time.Sleep(2 * time.Millisecond)
	}

	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var entries []struct {
		SymptomDescription string `json:"symptom_description"`
		Status             string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "second report symptoms", entries[0].SymptomDescription)
	assert.Equal(t, "first report symptoms", entries[1].SymptomDescription)
}

func TestHealthzEndpoint(t *testing.T) {
	s := newTestServer(t, mock.NewMockProvider().(*mock.MockProvider))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
