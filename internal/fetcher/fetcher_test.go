package fetcher

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opencanada-grants-parser/internal/config"
	"opencanada-grants-parser/internal/observability"
)

func testConfig() *config.Config {
	return &config.Config{
		RobotsCacheTTLHours: 1,
		HTTP: config.HTTPConfig{
			UserAgent:        "grants-parser/1.0",
			ConnectTimeoutMS: 5000,
			TotalTimeoutMS:   5000,
			RPM:              6000,
		},
	}
}

func testLogger() *observability.Logger {
	return observability.NewLogger("", "error")
}

func TestFetch(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html><body>listing</body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(testConfig(), testLogger())

	resp, err := f.Fetch(context.Background(), server.URL+"/grants/?page=1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(resp.Body), "listing")
	assert.Equal(t, "grants-parser/1.0", gotUA)
}

func TestFetchGzip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte("<html><body>compressed listing</body></html>"))
		_ = gz.Close()
	}))
	defer server.Close()

	f := NewFetcher(testConfig(), testLogger())

	resp, err := f.Fetch(context.Background(), server.URL+"/grants/")
	require.NoError(t, err)
	assert.Contains(t, string(resp.Body), "compressed listing")
}

func TestFetchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewFetcher(testConfig(), testLogger())

	_, err := f.Fetch(context.Background(), server.URL+"/grants/")
	assert.Error(t, err, "a failed page fetch is fatal, never retried")
}

func TestFetchDisallowedByRobots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /grants/\n"))
			return
		}
		_, _ = w.Write([]byte("should not be reached"))
	}))
	defer server.Close()

	f := NewFetcher(testConfig(), testLogger())

	_, err := f.Fetch(context.Background(), server.URL+"/grants/?page=1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "robots.txt")
}

func TestFetchConnectTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte("too late"))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.HTTP.ConnectTimeoutMS = 50

	f := NewFetcher(cfg, testLogger())

	start := time.Now()
	_, err := f.Fetch(context.Background(), server.URL+"/grants/")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 250*time.Millisecond, "request must be cut off by the per-request deadline")
}

func TestRateLimiterSpacing(t *testing.T) {
	rl := NewRateLimiter(6000) // 100 rps, ~10ms apart
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, rl.Wait(ctx))
	}
	elapsed := time.Since(start)

	// First token is free, the next two wait one interval each.
	assert.GreaterOrEqual(t, elapsed, 15*time.Millisecond)
}
