package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexlabs/gavel/internal/config"
	"github.com/lexlabs/gavel/internal/core"
	"github.com/lexlabs/gavel/internal/core/model"
	"github.com/lexlabs/gavel/internal/corpus"
)

type stubEmbedder struct {
	vectors map[string][]float32
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if v, ok := s.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0}, nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, t := range texts {
		vecs[i], _ = s.Embed(ctx, t)
	}
	return vecs, nil
}

type stubClassifier struct{}

func (s *stubClassifier) Classify(ctx context.Context, text string, labels []string, multiLabel bool) (map[string]float64, error) {
	return map[string]float64{}, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "corpus.csv")
	csv := "article,title,description\n" +
		"Article 47,Intoxicants,The State shall prohibit intoxicating drinks.\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	store, err := corpus.Load(path)
	require.NoError(t, err)

	embedder := &stubEmbedder{vectors: map[string][]float32{
		"Intoxicants: The State shall prohibit intoxicating drinks.": {0, 1},
		"can I drink": {0, 1},
	}}
	require.NoError(t, store.EmbedAll(context.Background(), embedder))

	cfg := &config.Config{}
	cfg.ApplyDefaults()

	return &Server{Analyzer: core.NewAnalyzer(store, embedder, &stubClassifier{}, nil, cfg)}
}

func postJSON(t *testing.T, r *gin.Engine, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAnalyzeEndpoint(t *testing.T) {
	s := newTestServer(t)
	r := s.SetupRouter()

	w := postJSON(t, r, "/analyze", `{"situation": "can I drink"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result model.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, model.VerdictNo, result.Verdict)
	assert.NotEmpty(t, result.Reasoning)
	assert.NotEmpty(t, result.Loopholes)
}

func TestAnalyzeEndpointBadJSON(t *testing.T) {
	s := newTestServer(t)
	r := s.SetupRouter()

	w := postJSON(t, r, "/analyze", `{"situation": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeEndpointEmptySituationStillAnswers(t *testing.T) {
	s := newTestServer(t)
	r := s.SetupRouter()

	// Domain-level problems never become transport failures.
	w := postJSON(t, r, "/analyze", `{"situation": ""}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result model.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, model.VerdictMaybe, result.Verdict)
	assert.Equal(t, core.PromptForInput, result.Reasoning)
}

func TestAnalyzeBatchEndpoint(t *testing.T) {
	s := newTestServer(t)
	r := s.SetupRouter()

	w := postJSON(t, r, "/analyze-batch", `{"situations": ["can I drink", "xylophone marmalade"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Results []model.Result `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, model.VerdictNo, resp.Results[0].Verdict)
	assert.Equal(t, model.VerdictMaybe, resp.Results[1].Verdict)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	r := s.SetupRouter()

	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
