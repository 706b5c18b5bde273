package server

import (
	"bytes"
	"context"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahesh-hegde/instante/app/config"
	"github.com/mahesh-hegde/instante/app/dataset"
)

const salesCSV = "region,sales\neast,10\nwest,7\neast,5\n"

func newTestServer(t *testing.T) (*echo.Echo, dataset.Store) {
	t.Helper()
	conf := config.DefaultConfig()
	store := dataset.NewMemoryStore(0)
	return NewServer(NewInstanteController(store, conf), conf, config.ServerRuntimeConfig{}), store
}

func do(t *testing.T, e *echo.Echo, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	var body map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	}
	return rec, body
}

func jsonRequest(t *testing.T, method, target string, v any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func upload(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec, body := do(t, e, uploadRequest(t, "sales.csv", salesCSV))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	id, _ := body["file_id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestServer_Health(t *testing.T) {
	e, _ := newTestServer(t)
	for _, target := range []string{"/", "/health"} {
		t.Run(target, func(t *testing.T) {
			rec, _ := do(t, e, httptest.NewRequest(http.MethodGet, target, nil))
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestServer_UploadAndChart(t *testing.T) {
	e, _ := newTestServer(t)

	rec, body := do(t, e, uploadRequest(t, "sales.csv", salesCSV))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "File processed successfully. 3 rows, 2 columns.", body["message"])
	assert.Equal(t, []any{"region", "sales"}, body["columns"])
	id := body["file_id"].(string)

	rec, body = do(t, e, jsonRequest(t, http.MethodPost, "/chart-data", map[string]any{
		"file_id":    id,
		"chart_type": "bar",
		"parameters": map[string]any{"x_axis": "region", "y_axis": "sales"},
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "bar", body["chart_type"])
	assert.Equal(t, "Bar Chart - region vs sales", body["title"])
	assert.Equal(t, []any{
		map[string]any{"region": "east", "sales": 15.0},
		map[string]any{"region": "west", "sales": 7.0},
	}, body["data"])

	rec, body = do(t, e, httptest.NewRequest(http.MethodGet, "/files/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{3.0, 2.0}, body["shape"])

	rec, body = do(t, e, httptest.NewRequest(http.MethodPost, "/analyze/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, body["suggestions"])
	assert.Equal(t, id, body["file_id"])

	rec, body = do(t, e, jsonRequest(t, http.MethodPost, "/explain", map[string]any{
		"file_id":    id,
		"chart_type": "pie",
		"parameters": map[string]any{"x_axis": "region"},
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, body["html"], "<h3>Pie Chart - region</h3>")

	rec, _ = do(t, e, httptest.NewRequest(http.MethodDelete, "/files/"+id, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = do(t, e, httptest.NewRequest(http.MethodGet, "/files/"+id, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Errors(t *testing.T) {
	e, store := newTestServer(t)
	id := upload(t, e)

	empty, err := dataset.NewBuilder("empty.csv").AddNumeric("v", []float64{math.NaN()}).Build()
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), "empty", empty))

	chart := func(fileID, chartType string, params map[string]any) *http.Request {
		return jsonRequest(t, http.MethodPost, "/chart-data", map[string]any{
			"file_id":    fileID,
			"chart_type": chartType,
			"parameters": params,
		})
	}

	cases := []struct {
		name     string
		req      *http.Request
		wantCode int
	}{
		{"unknown file", chart("nope", "bar", map[string]any{"x_axis": "region"}), http.StatusNotFound},
		{"unsupported chart type", chart(id, "gauge", nil), http.StatusBadRequest},
		{"missing column", chart(id, "scatter", map[string]any{"x_axis": "sales"}), http.StatusBadRequest},
		{"nothing to plot", chart("empty", "histogram", map[string]any{"x_axis": "v"}), http.StatusUnprocessableEntity},
		{"malformed body", func() *http.Request {
			req := httptest.NewRequest(http.MethodPost, "/chart-data", bytes.NewReader([]byte(`{"file_id":`)))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			return req
		}(), http.StatusBadRequest},
		{"unsupported extension", uploadRequest(t, "notes.txt", "hello"), http.StatusBadRequest},
		{"analyze unknown file", httptest.NewRequest(http.MethodPost, "/analyze/nope", nil), http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, body := do(t, e, tc.req)
			assert.Equal(t, tc.wantCode, rec.Code, rec.Body.String())
			assert.NotEmpty(t, body["detail"])
		})
	}
}
