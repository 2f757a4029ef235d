package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IBM/vmware-l4-automation/internal/util/retry"
)

func fastRetry() Option {
	return WithRetry(retry.WithMaxAttempts(3), retry.WithInitialDelay(time.Millisecond))
}

func TestClient_JSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/things", r.URL.Path)
		assert.Equal(t, "a==b", r.URL.Query().Get("filter"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "labctl", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"name":"thing","count":2}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", WithBearer("tok"), WithHeader("Accept", "application/json"), fastRetry())

	var out struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	resp, err := c.JSON(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "v1/things",
		Query:  url.Values{"filter": {"a==b"}},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "thing", out.Name)
	assert.Equal(t, 2, out.Count)
}

func TestClient_AbsolutePath(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/task/1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New("https://unused.invalid", fastRetry())
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: srv.URL + "/api/task/1"})
	require.NoError(t, err)
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			t.Parallel()
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if calls.Add(1) < 3 {
					w.WriteHeader(status)
					return
				}
				_, _ = w.Write([]byte(`{}`))
			}))
			defer srv.Close()

			c := New(srv.URL, fastRetry())
			_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
			require.NoError(t, err)
			assert.EqualValues(t, 3, calls.Load())
		})
	}
}

func TestClient_NoRetryOnClientError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"denied"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, fastRetry())
	_, err := c.Do(context.Background(), Request{Method: http.MethodPost, Path: "/x?secret=1"})
	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())

	var herr *HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusForbidden, herr.StatusCode)
	assert.Equal(t, http.MethodPost, herr.Method)
	assert.NotContains(t, herr.URL, "secret")
	assert.Contains(t, herr.Body, "denied")
	assert.True(t, IsStatus(err, http.StatusForbidden))
	assert.False(t, retry.IsFatal(err))
}

func TestClient_GivesUpOnPersistentServerError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, fastRetry())
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	require.Error(t, err)
	assert.EqualValues(t, 3, calls.Load())
	assert.True(t, IsStatus(err, http.StatusInternalServerError))
}

func TestClient_MalformedJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := New(srv.URL, fastRetry())
	var out map[string]any
	_, err := c.JSON(context.Background(), Request{Method: http.MethodGet, Path: "/"}, &out)

	var derr *DecodeError
	require.ErrorAs(t, err, &derr)
}

func TestClient_SendsBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/xml", r.Header.Get("Content-Type"))
		buf := make([]byte, 64)
		n, _ := r.Body.Read(buf)
		assert.Equal(t, "<a/>", string(buf[:n]))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := New(srv.URL, fastRetry())
	resp, err := c.Do(context.Background(), Request{
		Method:      http.MethodPost,
		Path:        "/",
		Body:        []byte("<a/>"),
		ContentType: "application/xml",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
}

func TestEncodeJSON(t *testing.T) {
	t.Parallel()
	data, err := EncodeJSON(map[string]string{"client_name": "TOKEN-1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"client_name":"TOKEN-1"}`, string(data))
}
