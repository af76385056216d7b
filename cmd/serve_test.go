package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/lead-quality-cli/internal/model"
	"github.com/sells-group/lead-quality-cli/internal/store"
)

func newTestServeStore(t *testing.T) store.Store {
	t.Helper()

	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "serve_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func seedSnapshot(t *testing.T, st store.Store) *model.Snapshot {
	t.Helper()

	contacts := []model.Contact{
		{
			ID:            "101",
			Email:         "lead@example.com",
			Course:        "Data Science",
			RawLeadStatus: "warm_lead",
			LeadStatus:    model.KnownStatus(model.StatusWarm),
			HasEmail:      true,
			HasCourse:     true,
		},
		{
			ID:            "102",
			Course:        "Data Science",
			RawLeadStatus: "not_interested",
			LeadStatus:    model.KnownStatus(model.StatusNotInterested),
			HasCourse:     true,
		},
	}

	snap, err := st.SaveSnapshot(context.Background(), model.FetchWindow{
		DateField: "created",
		StartMS:   1704047400000,
		EndMS:     1706725800000,
	}, contacts)
	require.NoError(t, err)
	return snap
}

func TestRouter_Health(t *testing.T) {
	r := newRouter(newTestServeStore(t))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &body)
	require.NoError(t, err)
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_LatestAnalysis(t *testing.T) {
	st := newTestServeStore(t)
	seedSnapshot(t, st)
	r := newRouter(st)

	req := httptest.NewRequest(http.MethodGet, "/api/analysis", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var analysis model.Analysis
	err := json.Unmarshal(rr.Body.Bytes(), &analysis)
	require.NoError(t, err)
	assert.Equal(t, 2, analysis.TotalContacts)
	assert.Equal(t, 1, analysis.WithEmail)
	require.NotEmpty(t, analysis.QualityPivot)
	assert.Equal(t, "Data Science", analysis.QualityPivot[0].Course)
}

func TestRouter_LatestAnalysis_Empty(t *testing.T) {
	r := newRouter(newTestServeStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/analysis", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)

	var body map[string]string
	err := json.Unmarshal(rr.Body.Bytes(), &body)
	require.NoError(t, err)
	assert.Contains(t, body["error"], "no snapshots")
}

func TestRouter_AnalysisByID(t *testing.T) {
	st := newTestServeStore(t)
	snap := seedSnapshot(t, st)
	r := newRouter(st)

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/"+snap.ID, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var analysis model.Analysis
	err := json.Unmarshal(rr.Body.Bytes(), &analysis)
	require.NoError(t, err)
	assert.Equal(t, 2, analysis.TotalContacts)
}

func TestRouter_AnalysisByID_NotFound(t *testing.T) {
	r := newRouter(newTestServeStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/missing-id", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_Runs(t *testing.T) {
	st := newTestServeStore(t)
	snap := seedSnapshot(t, st)
	r := newRouter(st)

	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var snaps []model.Snapshot
	err := json.Unmarshal(rr.Body.Bytes(), &snaps)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, snap.ID, snaps[0].ID)
	assert.Empty(t, snaps[0].Contacts)
}
