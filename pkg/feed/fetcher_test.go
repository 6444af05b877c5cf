package feed

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	t.Run("status 200", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{}"))
		}))
		defer server.Close()

		body, err := NewHTTPFetcher("test-agent").Fetch(context.Background(), server.URL+"/search?q=x")
		require.NoError(t, err)
		assert.Equal(t, "{}", body)
	})

	t.Run("default user agent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer server.Close()

		body, err := NewHTTPFetcher("").Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true}`, body)
	})

	t.Run("status 404", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"not found"}`))
		}))
		defer server.Close()

		body, err := NewHTTPFetcher("").Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Empty(t, body)
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusNotFound, statusErr.Code)
		assert.Equal(t, "unexpected status code: 404", err.Error())
		assert.False(t, errors.Is(err, ErrNetwork))
	})

	t.Run("status 500", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewHTTPFetcher("").Fetch(context.Background(), server.URL)
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	})

	t.Run("invalid url makes no request", func(t *testing.T) {
		var hits int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher("")
		for _, u := range []string{"", "not-a-valid-url", "/search?q=x", "http://", "ftp://example.com/x", "://bad", "http://exa mple.com"} {
			body, err := fetcher.Fetch(context.Background(), u)
			require.Error(t, err, u)
			assert.True(t, errors.Is(err, ErrInvalidURL), "%q: %v", u, err)
			assert.Empty(t, body)
		}
		assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
	})

	t.Run("no response within read timeout", func(t *testing.T) {
		done := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-done:
			case <-time.After(2 * time.Second):
			}
		}))
		defer server.Close()
		defer close(done)

		fetcher := newHTTPFetcher("", time.Second, 50*time.Millisecond)
		st := time.Now()
		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNetwork), err.Error())
		assert.Less(t, time.Since(st), time.Second)
	})

	t.Run("body stalls within read timeout", func(t *testing.T) {
		done := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"response":`))
			w.(http.Flusher).Flush()
			select {
			case <-done:
			case <-time.After(2 * time.Second):
			}
		}))
		defer server.Close()
		defer close(done)

		fetcher := newHTTPFetcher("", time.Second, 50*time.Millisecond)
		body, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNetwork), err.Error())
		assert.Contains(t, err.Error(), "read body")
		assert.Empty(t, body)
	})

	t.Run("connection refused", func(t *testing.T) {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		addr := listener.Addr().String()
		require.NoError(t, listener.Close())

		_, err = NewHTTPFetcher("").Fetch(context.Background(), "http://"+addr+"/search")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNetwork))
	})

	t.Run("canceled context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{}"))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewHTTPFetcher("").Fetch(ctx, server.URL)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNetwork))
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("invalid utf-8 replaced", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte{'"', 0xff, 'a', '"'})
		}))
		defer server.Close()

		body, err := NewHTTPFetcher("").Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "\"�a\"", body)
	})
}
