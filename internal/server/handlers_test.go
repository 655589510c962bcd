package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataqa-labs/tablecheck/internal/quality"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return New(Config{
		Addr:   ":0",
		Engine: quality.NewEngine(quality.DefaultThresholds()),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func doRequest(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func csvUpload(t *testing.T, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", "data.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

// cleanCSV builds CSV content that raises no flags under the defaults.
func cleanCSV(rows int) string {
	var b strings.Builder
	b.WriteString("id,color\n")
	labels := []string{"red", "green", "blue"}
	for i := 0; i < rows; i++ {
		// ids start at 1 so no zero values appear
		b.WriteString(strconv.Itoa(i+1) + "," + labels[i%3] + "\n")
	}
	return b.String()
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, testServer(t), httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "tablecheck", body["service"])
}

func TestQualityAggregate(t *testing.T) {
	payload := `{"n_rows":5000,"n_cols":10,"max_missing_share":0.1,"numeric_cols":6,"categorical_cols":4}`
	req := httptest.NewRequest(http.MethodPost, "/quality", strings.NewReader(payload))
	rec := doRequest(t, testServer(t), req)

	require.Equal(t, http.StatusOK, rec.Code)

	var rep quality.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.True(t, rep.OKForModel)
	assert.Equal(t, 1.0, rep.QualityScore)
	assert.Equal(t, quality.Shape{NRows: 5000, NCols: 10}, rep.DatasetShape)
	assert.GreaterOrEqual(t, rep.LatencyMS, 0.0)
}

func TestQualityAggregateMissingField(t *testing.T) {
	payload := `{"n_rows":5000,"n_cols":10,"numeric_cols":6,"categorical_cols":4}`
	req := httptest.NewRequest(http.MethodPost, "/quality", strings.NewReader(payload))
	rec := doRequest(t, testServer(t), req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "max_missing_share")
}

func TestQualityAggregateInvalidValues(t *testing.T) {
	payload := `{"n_rows":-5,"n_cols":10,"max_missing_share":0.1,"numeric_cols":6,"categorical_cols":4}`
	req := httptest.NewRequest(http.MethodPost, "/quality", strings.NewReader(payload))
	rec := doRequest(t, testServer(t), req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "n_rows")
}

func TestQualityAggregateBadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/quality", strings.NewReader("{not json"))
	rec := doRequest(t, testServer(t), req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQualityFromCSV(t *testing.T) {
	body, contentType := csvUpload(t, cleanCSV(150))
	req := httptest.NewRequest(http.MethodPost, "/quality-from-csv", body)
	req.Header.Set("Content-Type", contentType)
	rec := doRequest(t, testServer(t), req)

	require.Equal(t, http.StatusOK, rec.Code)

	var rep quality.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.True(t, rep.OKForModel)
	assert.Equal(t, quality.Shape{NRows: 150, NCols: 2}, rep.DatasetShape)
	assert.False(t, rep.Flags.TooFewRows)
}

func TestQualityFromCSVRagged(t *testing.T) {
	body, contentType := csvUpload(t, "a,b\n1,2\n3\n")
	req := httptest.NewRequest(http.MethodPost, "/quality-from-csv", body)
	req.Header.Set("Content-Type", contentType)
	rec := doRequest(t, testServer(t), req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQualityFromCSVMissingFile(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/quality-from-csv", strings.NewReader("id\n1\n"))
	req.Header.Set("Content-Type", "text/csv")
	rec := doRequest(t, testServer(t), req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFlagsFromCSV(t *testing.T) {
	// 5 identical single-column rows: constant column, few rows, all duplicates.
	body, contentType := csvUpload(t, "x\n1\n1\n1\n1\n1\n")
	req := httptest.NewRequest(http.MethodPost, "/quality-flags-from-csv", body)
	req.Header.Set("Content-Type", contentType)
	rec := doRequest(t, testServer(t), req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Flags quality.Flags `json:"flags"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Flags.HasConstantColumns)
	assert.True(t, resp.Flags.TooFewRows)
	assert.True(t, resp.Flags.HighDuplicateValuesRatio)
	assert.True(t, resp.Flags.NoCategoricalColumns)
}

func TestUploadTooLarge(t *testing.T) {
	s := New(Config{
		Addr:           ":0",
		MaxUploadBytes: 64,
		Engine:         quality.NewEngine(quality.DefaultThresholds()),
	})

	body, contentType := csvUpload(t, cleanCSV(500))
	req := httptest.NewRequest(http.MethodPost, "/quality-from-csv", body)
	req.Header.Set("Content-Type", contentType)
	rec := doRequest(t, s, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
