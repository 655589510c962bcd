package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dataqa-labs/tablecheck/internal/parser"
	"github.com/dataqa-labs/tablecheck/internal/quality"
)

// qualityRequest mirrors quality.Aggregate with pointer fields so that a
// missing JSON key is distinguishable from an explicit zero.
type qualityRequest struct {
	NRows           *int     `json:"n_rows"`
	NCols           *int     `json:"n_cols"`
	MaxMissingShare *float64 `json:"max_missing_share"`
	NumericCols     *int     `json:"numeric_cols"`
	CategoricalCols *int     `json:"categorical_cols"`
}

func (q *qualityRequest) toAggregate() (quality.Aggregate, error) {
	required := []struct {
		name string
		ok   bool
	}{
		{"n_rows", q.NRows != nil},
		{"n_cols", q.NCols != nil},
		{"max_missing_share", q.MaxMissingShare != nil},
		{"numeric_cols", q.NumericCols != nil},
		{"categorical_cols", q.CategoricalCols != nil},
	}
	for _, f := range required {
		if !f.ok {
			return quality.Aggregate{}, &quality.InvalidAggregateError{Field: f.name, Reason: "is required"}
		}
	}
	return quality.Aggregate{
		NRows:           *q.NRows,
		NCols:           *q.NCols,
		MaxMissingShare: *q.MaxMissingShare,
		NumericCols:     *q.NumericCols,
		CategoricalCols: *q.CategoricalCols,
	}, nil
}

type flagsResponse struct {
	Flags quality.Flags `json:"flags"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "tablecheck",
		"version": serviceVersion,
	})
}

func (s *Server) handleQuality(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "/quality"

	var req qualityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.clientError(w, r, endpoint, start, "invalid JSON body: "+err.Error())
		return
	}
	agg, err := req.toAggregate()
	if err != nil {
		s.clientError(w, r, endpoint, start, err.Error())
		return
	}

	rep, err := s.engine.EvaluateAggregate(agg)
	var iaErr *quality.InvalidAggregateError
	if errors.As(err, &iaErr) {
		s.clientError(w, r, endpoint, start, iaErr.Error())
		return
	}
	if err != nil {
		s.serverError(w, r, endpoint, start, err)
		return
	}

	s.logRequest(r.Context(), endpoint, "success", rep.LatencyMS, rep)
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleQualityFromCSV(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "/quality-from-csv"

	rep, ok := s.evaluateUpload(w, r, endpoint, start)
	if !ok {
		return
	}
	s.logRequest(r.Context(), endpoint, "success", rep.LatencyMS, rep)
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleFlagsFromCSV(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	const endpoint = "/quality-flags-from-csv"

	rep, ok := s.evaluateUpload(w, r, endpoint, start)
	if !ok {
		return
	}
	s.logRequest(r.Context(), endpoint, "success", rep.LatencyMS, nil)
	writeJSON(w, http.StatusOK, flagsResponse{Flags: rep.Flags})
}

// evaluateUpload runs the shared upload path: read the multipart "file"
// field, parse it as CSV and evaluate the table. On failure it writes the
// error response itself and returns ok=false.
func (s *Server) evaluateUpload(w http.ResponseWriter, r *http.Request, endpoint string, start time.Time) (*quality.Report, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	file, _, err := r.FormFile("file")
	if err != nil {
		s.clientError(w, r, endpoint, start, "multipart field \"file\" with CSV content is required")
		return nil, false
	}
	defer file.Close()

	tbl, err := parser.ReadTable(file)
	if err != nil {
		s.clientError(w, r, endpoint, start, "failed to read CSV: "+err.Error())
		return nil, false
	}

	rep, err := s.engine.EvaluateTable(tbl)
	var mtErr *quality.MalformedTableError
	if errors.As(err, &mtErr) {
		s.clientError(w, r, endpoint, start, mtErr.Error())
		return nil, false
	}
	if err != nil {
		s.serverError(w, r, endpoint, start, err)
		return nil, false
	}
	return rep, true
}

func (s *Server) clientError(w http.ResponseWriter, r *http.Request, endpoint string, start time.Time, detail string) {
	s.logRequest(r.Context(), endpoint, "error", sinceMS(start), nil)
	writeJSON(w, http.StatusBadRequest, errorResponse{Detail: detail})
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, endpoint string, start time.Time, err error) {
	s.logger.Error("request failed", "endpoint", endpoint, "error", err, "request_id", RequestID(r.Context()))
	s.logRequest(r.Context(), endpoint, "error", sinceMS(start), nil)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "internal error"})
}

func sinceMS(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
