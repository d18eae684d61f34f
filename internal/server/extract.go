package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hqplabs/idcard-ocr/constants"
	"github.com/hqplabs/idcard-ocr/internal/common"
	"github.com/hqplabs/idcard-ocr/internal/extract"
	"github.com/hqplabs/idcard-ocr/internal/pipeline"
)

// Extractor is the pipeline surface the transport depends on.
// *pipeline.Processor satisfies it.
type Extractor interface {
	Extract(ctx context.Context, frontRef, backRef, userID string) (*extract.ExtractedRecord, *pipeline.Rejection, error)
}

type extractRequest struct {
	UserID   string `json:"user_id"`
	FrontURL string `json:"front_url"`
	BackURL  string `json:"back_url,omitempty"`
}

func (req extractRequest) validate() string {
	if req.UserID == "" {
		return "user_id is required"
	}
	if req.FrontURL == "" {
		return "front_url is required"
	}
	return ""
}

type extractResponse struct {
	Status string                   `json:"status"`
	Record *extract.ExtractedRecord `json:"record,omitempty"`
	*pipeline.Rejection
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := GetRequestID(ctx)

	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
		return
	}

	rec, rej, err := s.extractor.Extract(ctx, req.FrontURL, req.BackURL, req.UserID)
	if err != nil {
		s.logger.Error("server.extract.failed", "req_id", reqID, "error", err)
		status := http.StatusInternalServerError
		if errors.Is(err, common.ErrUnreachableSource) || errors.Is(err, common.ErrOCRUnavailable) {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	if rej != nil {
		status := http.StatusUnprocessableEntity
		label := "rejected"
		if rej.Reason == constants.ReasonAlreadyExists {
			status = http.StatusConflict
			label = "exists"
		}
		writeJSON(w, status, extractResponse{Status: label, Rejection: rej})
		return
	}

	writeJSON(w, http.StatusOK, extractResponse{Status: "saved", Record: rec})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
