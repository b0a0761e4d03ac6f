package ui

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"actionaudit/adapters/excel"
	"actionaudit/app"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	analyzer := app.NewAnalyzerService(excel.NewWorkbookDecoder(), nil, nil)
	return NewApp(testConfig(5), analyzer)
}

const mixedCSV = "Action,Owner,Due Date\nAlice,a@example.com,2000-01-02\nno,,2000-01-02\nBob,b@example.com,2100-01-02\n"

func TestAppAnalyzeCSV(t *testing.T) {
	api := newTestApp(t)

	body, contentType := multipartUpload(t, "workbook", "tasks.csv", []byte(mixedCSV))
	req := httptest.NewRequest(http.MethodPost, "/api/analyses", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var envelope struct {
		Result map[string]interface{} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Result)
	assert.Equal(t, float64(3), envelope.Result["total_rows"])
	assert.Equal(t, float64(2), envelope.Result["assigned_count"])
	assert.Equal(t, float64(1), envelope.Result["overdue_count"])
	assert.Equal(t, "Total: 3 | Assigned: 2 (67%) | Overdue: 1 (50%)", envelope.Result["summary"])
}

func TestAppMissingActionColumnMapsTo422(t *testing.T) {
	api := newTestApp(t)

	csv := "Task,Due Date\nAlice,2000-01-02\n"
	body, contentType := multipartUpload(t, "workbook", "tasks.csv", []byte(csv))
	req := httptest.NewRequest(http.MethodPost, "/api/analyses", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "MISSING_ACTION_COLUMN", payload["code"])
	assert.Equal(t, "Action column not found. Please ensure your Excel file has an 'Action' column.", payload["error"])
}

func TestAppRejectsUnsupportedExtension(t *testing.T) {
	api := newTestApp(t)

	body, contentType := multipartUpload(t, "workbook", "notes.txt", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/api/analyses", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "FORMAT_ERROR", payload["code"])
}

func TestAppRejectsMissingFormField(t *testing.T) {
	api := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/analyses", bytes.NewBufferString("no form here"))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "INVALID_INPUT", payload["code"])
}

func TestAppRunLookups(t *testing.T) {
	api := newTestApp(t)

	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyses", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"runs": [], "count": 0}`, rec.Body.String())

	rec = httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyses/0190a6a3-1f7b-7c4e-9a1d-2b3c4d5e6f70", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/analyses/garbage", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAppHealthz(t *testing.T) {
	api := newTestApp(t)

	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok", "history": false}`, rec.Body.String())
}
