package remote_api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcp_snm/algodex/internal/algo_errors"
	"github.com/tcp_snm/algodex/internal/metrics"
)

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := New(Options{BaseURL: "problems.local/api"})
	assert.ErrorIs(t, err, algo_errors.ErrInvalidInput)

	c, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
}

func TestDoSendsHeaders(t *testing.T) {
	var got http.Header
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Hash Table"}`))
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL + "/", Token: "secret"})
	require.NoError(t, err)

	var out struct {
		Name string `json:"name"`
	}
	err = c.Post(context.Background(), "create category", "/categories/"+PathEscape("Hash Table"), map[string]string{"name": "x"}, &out)
	require.NoError(t, err)

	assert.Equal(t, "Hash Table", out.Name)
	assert.Equal(t, "/categories/Hash%20Table", gotPath)
	assert.Equal(t, "Bearer secret", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.NotEmpty(t, got.Get(HeaderRequestID))
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL})
	require.NoError(t, err)
	require.NoError(t, c.Delete(context.Background(), "delete problem", "/problems/two-sum"))
	assert.Empty(t, got.Get("Authorization"))
}

func TestDoEmptySuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL})
	require.NoError(t, err)
	var out map[string]any
	assert.NoError(t, c.Get(context.Background(), "list problems", "/problems/", &out))
	assert.Nil(t, out)
}

func TestDoMapsErrorStatus(t *testing.T) {
	cases := []struct {
		status int
		body   string
		want   error
		msg    string
	}{
		{http.StatusBadRequest, `{"detail":"bad slug"}`, algo_errors.ErrInvalidRequest, "bad slug"},
		{http.StatusUnprocessableEntity, `{"detail":{"error":"title missing"}}`, algo_errors.ErrInvalidRequest, "title missing"},
		{http.StatusUnauthorized, `{"detail":{"message":"token expired"}}`, algo_errors.ErrUnAuthorized, "token expired"},
		{http.StatusNotFound, `{"detail":{"error":"problem not found"}}`, algo_errors.ErrNotFound, "problem not found"},
		{http.StatusConflict, `conflict`, algo_errors.ErrEntityAlreadyExist, "conflict"},
		{http.StatusInternalServerError, ``, algo_errors.ErrRemoteApi, "failed to get problem"},
	}
	for _, c := range cases {
		t.Run(http.StatusText(c.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(c.status)
				_, _ = w.Write([]byte(c.body))
			}))
			defer srv.Close()

			client, err := New(Options{BaseURL: srv.URL})
			require.NoError(t, err)
			err = client.Get(context.Background(), "get problem", "/problems/x", nil)
			require.ErrorIs(t, err, c.want)
			assert.Contains(t, err.Error(), c.msg)
		})
	}
}

func TestDoInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"slug_id":`))
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL})
	require.NoError(t, err)
	var out []map[string]any
	err = c.Get(context.Background(), "list problems", "/problems/", &out)
	assert.ErrorIs(t, err, algo_errors.ErrRemoteApi)
}

func TestDoConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(Options{BaseURL: url})
	require.NoError(t, err)
	err = c.Get(context.Background(), "list problems", "/problems/", nil)
	assert.ErrorIs(t, err, algo_errors.ErrInternal)
}

func TestDoRecordsMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	m := metrics.New(prometheus.NewRegistry())
	c, err := New(Options{BaseURL: srv.URL, Metrics: m})
	require.NoError(t, err)

	_ = c.Get(context.Background(), "get problem", "/problems/x", nil)
	_ = c.Get(context.Background(), "get problem", "/problems/y", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RemoteRequestsTotal.WithLabelValues("get problem", "404")))
}

func TestDoRateLimitHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL, RPS: 0.5, Burst: 1})
	require.NoError(t, err)

	require.NoError(t, c.Delete(context.Background(), "delete problem", "/problems/a"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = c.Delete(ctx, "delete problem", "/problems/b")
	assert.ErrorIs(t, err, algo_errors.ErrInternal)
}

func TestDecodeErrorDetail(t *testing.T) {
	assert.Equal(t, "", decodeErrorDetail(nil))
	assert.Equal(t, "plain text", decodeErrorDetail([]byte(" plain text ")))
	assert.Equal(t, "msg", decodeErrorDetail([]byte(`{"detail":{"message":"msg","error":"err"}}`)))
	assert.Equal(t, "err", decodeErrorDetail([]byte(`{"detail":{"error":"err"}}`)))
	assert.Equal(t, "text", decodeErrorDetail([]byte(`{"detail":"text"}`)))
	assert.Equal(t, `{"other":1}`, decodeErrorDetail([]byte(`{"other":1}`)))
}
