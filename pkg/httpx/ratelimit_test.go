package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/opencouncil/deskd/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware(t *testing.T) {
	t.Parallel()

	cfg := httpx.RateLimitConfig{
		RequestsPerWindow: 3,
		Window:            time.Minute,
		Burst:             3,
	}

	handler := httpx.Chain(okHandler(), httpx.RateLimitByIP(cfg))

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("allows up to the burst then rejects", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			require.Equal(t, http.StatusOK, do("10.0.0.1:1234").Code)
		}

		rec := do("10.0.0.1:1234")
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
	})

	t.Run("keys are independent per IP", func(t *testing.T) {
		require.Equal(t, http.StatusOK, do("10.0.0.2:1234").Code)
	})
}

func TestIPKeyExtractor(t *testing.T) {
	t.Parallel()

	newReq := func() *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.9:5555"
		return req
	}

	t.Run("prefers first X-Forwarded-For hop", func(t *testing.T) {
		req := newReq()
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		require.Equal(t, "203.0.113.7", httpx.IPKeyExtractor(req))
	})

	t.Run("falls back to X-Real-IP", func(t *testing.T) {
		req := newReq()
		req.Header.Set("X-Real-IP", "203.0.113.8")
		require.Equal(t, "203.0.113.8", httpx.IPKeyExtractor(req))
	})

	t.Run("strips the port from RemoteAddr", func(t *testing.T) {
		require.Equal(t, "192.0.2.9", httpx.IPKeyExtractor(newReq()))
	})
}

func TestParseRateLimitFromEnv(t *testing.T) {
	t.Setenv("RATELIMIT_TEST_REQUESTS", "7")
	t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "30")
	t.Setenv("RATELIMIT_TEST_BURST", "9")

	cfg := httpx.ParseRateLimitFromEnv("TEST", httpx.RateLimitConfig{
		RequestsPerWindow: 1,
		Window:            time.Minute,
		Burst:             1,
	})

	require.Equal(t, 7, cfg.RequestsPerWindow)
	require.Equal(t, 30*time.Second, cfg.Window)
	require.Equal(t, 9, cfg.Burst)

	t.Run("ignores non-positive overrides", func(t *testing.T) {
		t.Setenv("RATELIMIT_TEST_REQUESTS", "-1")
		cfg := httpx.ParseRateLimitFromEnv("TEST", httpx.RateLimitConfig{
			RequestsPerWindow: 4,
			Window:            time.Minute,
			Burst:             4,
		})
		require.Equal(t, 4, cfg.RequestsPerWindow)
	})
}
