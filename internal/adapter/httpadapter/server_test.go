package httpadapter_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/pm10-etl/internal/adapter/httpadapter"
	"github.com/couchcryptid/pm10-etl/internal/domain"
	"github.com/couchcryptid/pm10-etl/internal/observability"
	"github.com/couchcryptid/pm10-etl/internal/pipeline"
)

type emptySource struct{}

func (emptySource) List(context.Context) ([]string, error) { return nil, nil }

func (emptySource) Open(context.Context, string) (io.ReadCloser, error) { return nil, io.EOF }

type discardLoader struct{}

func (discardLoader) LoadBatch(context.Context, []domain.Record) error { return nil }

type failingSource struct{ emptySource }

func (failingSource) List(context.Context) ([]string, error) {
	return nil, errors.New("input directory missing")
}

func newTestPipeline() *pipeline.Pipeline {
	return newPipelineWith(emptySource{})
}

func newPipelineWith(src pipeline.Source) *pipeline.Pipeline {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return pipeline.New(src, discardLoader{}, logger, observability.NewMetricsForTesting(), pipeline.DefaultOptions())
}

type statusBody struct {
	State  string           `json:"state"`
	Error  string           `json:"error"`
	Report *pipeline.Report `json:"report"`
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) statusBody {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body statusBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func serve(srv *httpadapter.Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	srv := httpadapter.NewServer(":0", newTestPipeline(), slog.Default())

	rec := serve(srv, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503BeforeFirstRun(t *testing.T) {
	srv := httpadapter.NewServer(":0", newTestPipeline(), slog.Default())

	rec := serve(srv, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReadyzReturns200AfterRun(t *testing.T) {
	p := newTestPipeline()
	_, err := p.Run(context.Background())
	assert.NoError(t, err)
	srv := httpadapter.NewServer(":0", p, slog.Default())

	rec := serve(srv, "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := httpadapter.NewServer(":0", newTestPipeline(), slog.Default())

	rec := serve(srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestReadyzReturns503AfterFailedRun(t *testing.T) {
	p := newPipelineWith(failingSource{})
	_, err := p.Run(context.Background())
	require.Error(t, err)
	srv := httpadapter.NewServer(":0", p, slog.Default())

	rec := serve(srv, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStatusPendingBeforeFirstRun(t *testing.T) {
	srv := httpadapter.NewServer(":0", newTestPipeline(), slog.Default())

	body := decodeStatus(t, serve(srv, "/status"))

	assert.Equal(t, "pending", body.State)
	assert.Nil(t, body.Report)
}

func TestStatusReportsLastRun(t *testing.T) {
	ok := newTestPipeline()
	_, err := ok.Run(context.Background())
	require.NoError(t, err)

	body := decodeStatus(t, serve(httpadapter.NewServer(":0", ok, slog.Default()), "/status"))
	assert.Equal(t, "succeeded", body.State)
	assert.Empty(t, body.Error)
	require.NotNil(t, body.Report)
	assert.Zero(t, body.Report.FilesSeen)

	failed := newPipelineWith(failingSource{})
	_, err = failed.Run(context.Background())
	require.Error(t, err)

	body = decodeStatus(t, serve(httpadapter.NewServer(":0", failed, slog.Default()), "/status"))
	assert.Equal(t, "failed", body.State)
	assert.Contains(t, body.Error, "input directory missing")
}
