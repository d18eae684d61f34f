package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hqplabs/idcard-ocr/constants"
	"github.com/hqplabs/idcard-ocr/internal/common"
	"github.com/hqplabs/idcard-ocr/internal/corpus"
	"github.com/hqplabs/idcard-ocr/internal/extract"
	"github.com/hqplabs/idcard-ocr/internal/metrics"
	"github.com/hqplabs/idcard-ocr/internal/pipeline"
)

type fakeExtractor struct {
	rec *extract.ExtractedRecord
	rej *pipeline.Rejection
	err error
}

func (f fakeExtractor) Extract(_ context.Context, _, _, _ string) (*extract.ExtractedRecord, *pipeline.Rejection, error) {
	return f.rec, f.rej, f.err
}

func newTestServer(ex Extractor) *Server {
	m := metrics.NewWith(prometheus.NewRegistry())
	return New(common.ServerConfig{Addr: ":0"}, ex, corpus.NewMemoryCorpus(), m, nil)
}

func postExtract(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/extract", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

const validBody = `{"user_id":"user-1","front_url":"front.jpg","back_url":"back.jpg"}`

func TestExtractEndpointSaved(t *testing.T) {
	rec := &extract.ExtractedRecord{
		Name:        "Rohit Sharma",
		IDNumber:    "111122223333",
		UserID:      "user-1",
		ExtractedAt: time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
	}
	w := postExtract(t, newTestServer(fakeExtractor{rec: rec}), validBody)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Status string                   `json:"status"`
		Record *extract.ExtractedRecord `json:"record"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "saved", resp.Status)
	require.NotNil(t, resp.Record)
	assert.Equal(t, "111122223333", resp.Record.IDNumber)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestExtractEndpointDuplicateConflict(t *testing.T) {
	prior := &extract.ExtractedRecord{IDNumber: "111122223333", UserID: "user-0"}
	rej := &pipeline.Rejection{Reason: constants.ReasonAlreadyExists, Prior: prior}
	w := postExtract(t, newTestServer(fakeExtractor{rej: rej}), validBody)

	require.Equal(t, http.StatusConflict, w.Code)
	var resp struct {
		Status string                   `json:"status"`
		Reason string                   `json:"reason"`
		Prior  *extract.ExtractedRecord `json:"prior"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "exists", resp.Status)
	assert.Equal(t, "ALREADY_EXISTS", resp.Reason)
	require.NotNil(t, resp.Prior)
	assert.Equal(t, "user-0", resp.Prior.UserID)
}

func TestExtractEndpointMissingEssentials(t *testing.T) {
	rej := &pipeline.Rejection{
		Reason:        constants.ReasonEssentialFieldsMissing,
		MissingFields: []string{"id_number"},
		RawText:       "blurry text",
	}
	w := postExtract(t, newTestServer(fakeExtractor{rej: rej}), validBody)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp struct {
		Reason        string   `json:"reason"`
		MissingFields []string `json:"missing_fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ESSENTIAL_FIELDS_MISSING", resp.Reason)
	assert.Equal(t, []string{"id_number"}, resp.MissingFields)
}

func TestExtractEndpointBadRequests(t *testing.T) {
	s := newTestServer(fakeExtractor{})
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{not json`},
		{"missing user_id", `{"front_url":"front.jpg"}`},
		{"missing front_url", `{"user_id":"user-1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postExtract(t, s, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestExtractEndpointCollaboratorFailure(t *testing.T) {
	w := postExtract(t, newTestServer(fakeExtractor{err: common.ErrUnreachableSource}), validBody)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = postExtract(t, newTestServer(fakeExtractor{err: common.ErrOCRUnavailable}), validBody)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(fakeExtractor{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, false, resp["mirror_available"])
}
