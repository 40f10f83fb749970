package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/leadscout/internal/config"
	"github.com/leadforge/leadscout/internal/events"
	"github.com/leadforge/leadscout/internal/model"
	"github.com/leadforge/leadscout/internal/recommend"
	"github.com/leadforge/leadscout/internal/scoring"
	"github.com/leadforge/leadscout/internal/store"
)

func newTestEnv(t *testing.T) *env {
	t.Helper()

	cfg = &config.Config{
		Scoring: scoring.DefaultConfig(),
		Recommend: config.RecommendConfig{
			ScoreThreshold: 70,
			TopNiches:      3,
			CandidateLimit: 1000,
		},
	}

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, st.Migrate(context.Background()))
	t.Cleanup(func() { _ = st.Close() })

	return &env{
		store:  st,
		calc:   scoring.NewCalculator(cfg.Scoring),
		engine: recommend.NewEngine(cfg.Recommend),
		bus:    events.NopBus{},
	}
}

func seedLead(t *testing.T, e *env, lead model.Lead) model.Lead {
	t.Helper()
	saved, err := e.store.InsertLead(context.Background(), lead)
	require.NoError(t, err)
	return *saved
}

func doRequest(t *testing.T, e *env, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	newRouter(e).ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestEnv(t)

	rec := doRequest(t, e, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestScoreLeadEndpoint(t *testing.T) {
	e := newTestEnv(t)
	now := time.Now().UTC()
	lead := seedLead(t, e, model.Lead{
		Email:     "jane@example.com",
		Phone:     "0821234567",
		Verified:  true,
		CreatedAt: &now,
	})

	rec := doRequest(t, e, http.MethodPost, "/api/leads/"+lead.ID+"/score", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		LeadID         string             `json:"lead_id"`
		Score          float64            `json:"score"`
		Features       map[string]float64 `json:"features"`
		Interpretation string             `json:"interpretation"`
		Persisted      bool               `json:"persisted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, lead.ID, resp.LeadID)
	assert.Greater(t, resp.Score, 0.0)
	assert.LessOrEqual(t, resp.Score, 100.0)
	assert.Len(t, resp.Features, 5)
	assert.NotEmpty(t, resp.Interpretation)
	assert.True(t, resp.Persisted)

	stored, err := e.store.GetLead(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.ScoredAt)
}

func TestScoreLeadNotFound(t *testing.T) {
	e := newTestEnv(t)

	rec := doRequest(t, e, http.MethodPost, "/api/leads/missing/score", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBatchScoreEndpoint(t *testing.T) {
	e := newTestEnv(t)
	seedLead(t, e, model.Lead{Email: "a@example.com"})
	seedLead(t, e, model.Lead{Email: "b@example.com"})

	rec := doRequest(t, e, http.MethodPost, "/api/leads/batch-score", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Scored    int `json:"scored"`
		Persisted int `json:"persisted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Scored)
	assert.Equal(t, 2, resp.Persisted)
}

func TestTopLeadsEndpoint(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	low := seedLead(t, e, model.Lead{Email: "low@example.com"})
	high := seedLead(t, e, model.Lead{Email: "high@example.com"})
	require.NoError(t, e.store.SaveScore(ctx, low.ID, 30, nil, time.Now().UTC()))
	require.NoError(t, e.store.SaveScore(ctx, high.ID, 90, nil, time.Now().UTC()))

	rec := doRequest(t, e, http.MethodGet, "/api/leads/top?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Leads []model.Lead `json:"leads"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Leads, 1)
	assert.Equal(t, high.ID, resp.Leads[0].ID)
}

func TestSimilarEndpoint(t *testing.T) {
	e := newTestEnv(t)
	target := seedLead(t, e, model.Lead{Email: "t@example.com", Niche: "real_estate", Location: "Austin"})
	seedLead(t, e, model.Lead{Email: "m@example.com", Niche: "real_estate", Location: "Austin"})
	seedLead(t, e, model.Lead{Email: "o@example.com", Niche: "tutors", Location: "Boston"})

	rec := doRequest(t, e, http.MethodGet, "/api/recommendations/similar/"+target.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.SimilarityResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, target.ID, resp.TargetID)
	require.Len(t, resp.Matches, 2)
	assert.Equal(t, "m@example.com", resp.Matches[0].Lead.Email)
}

func TestTrendingEndpoint(t *testing.T) {
	e := newTestEnv(t)
	seedLead(t, e, model.Lead{Email: "a@example.com", Niche: "tutors"})
	seedLead(t, e, model.Lead{Email: "b@example.com", Niche: "tutors"})
	seedLead(t, e, model.Lead{Email: "c@example.com", Niche: "plumbing"})

	rec := doRequest(t, e, http.MethodGet, "/api/recommendations/trending?days=7", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Trending []model.TrendingEntry `json:"trending"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Trending)
	assert.Equal(t, "tutors", resp.Trending[0].Niche)
	assert.Equal(t, 2, resp.Trending[0].Count)
}

func TestForYouEndpoint(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	good := seedLead(t, e, model.Lead{Email: "good@example.com", Niche: "tutors"})
	bad := seedLead(t, e, model.Lead{Email: "bad@example.com", Niche: "tutors"})
	require.NoError(t, e.store.SaveScore(ctx, good.ID, 85, nil, time.Now().UTC()))
	require.NoError(t, e.store.SaveScore(ctx, bad.ID, 40, nil, time.Now().UTC()))

	rec := doRequest(t, e, http.MethodGet, "/api/recommendations/for-you", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Recommendations []model.Lead `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Recommendations, 1)
	assert.Equal(t, good.ID, resp.Recommendations[0].ID)
}
