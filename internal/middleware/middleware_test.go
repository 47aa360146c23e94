package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit_GeneralTier(t *testing.T) {
	handler := RateLimitMiddleware(okHandler())

	// Burst of 20 passes, the 21st is rejected.
	var lastCode int
	for i := 0; i < burstGeneral+1; i++ {
		req := httptest.NewRequest("GET", "/cart", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		lastCode = w.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestRateLimit_StrictTierForSubmit(t *testing.T) {
	handler := RateLimitMiddleware(okHandler())

	var lastCode int
	for i := 0; i < burstStrict+1; i++ {
		req := httptest.NewRequest("POST", "/checkout/submit", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		lastCode = w.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestRateLimit_SeparateIdentities(t *testing.T) {
	handler := RateLimitMiddleware(okHandler())

	// Exhaust one IP's strict quota.
	for i := 0; i < burstStrict+1; i++ {
		req := httptest.NewRequest("POST", "/checkout/submit", nil)
		req.RemoteAddr = "10.0.0.3:1234"
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	// A different IP is unaffected.
	req := httptest.NewRequest("POST", "/checkout/submit", nil)
	req.RemoteAddr = "10.0.0.4:1234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_BearerTokenIdentity(t *testing.T) {
	handler := RateLimitMiddleware(okHandler())

	// Two sessions behind the same IP get independent quotas.
	for i := 0; i < burstStrict; i++ {
		req := httptest.NewRequest("POST", "/checkout/submit", nil)
		req.RemoteAddr = "10.0.0.5:1234"
		req.Header.Set("Authorization", "Bearer token-a")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	req := httptest.NewRequest("POST", "/checkout/submit", nil)
	req.RemoteAddr = "10.0.0.5:1234"
	req.Header.Set("Authorization", "Bearer token-b")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_TiersDoNotShareQuota(t *testing.T) {
	handler := RateLimitMiddleware(okHandler())

	// Exhaust the strict quota for this IP.
	for i := 0; i < burstStrict+1; i++ {
		req := httptest.NewRequest("POST", "/checkout/submit", nil)
		req.RemoteAddr = "10.0.0.6:1234"
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	// General routes still pass for the same IP.
	req := httptest.NewRequest("GET", "/cart", nil)
	req.RemoteAddr = "10.0.0.6:1234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestResolveRateTier(t *testing.T) {
	cases := []struct {
		path string
		tier string
	}{
		{"/checkout/submit", "strict"},
		{"/checkout/validate", "general"},
		{"/cart", "general"},
		{"/product/get-all-products", "general"},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			req := httptest.NewRequest("POST", tc.path, nil)
			_, _, tier := resolveRateTier(req)
			assert.Equal(t, tc.tier, tier)
		})
	}
}

func TestGetVisitor_ReusesLimiter(t *testing.T) {
	key := fmt.Sprintf("test:%s", t.Name())
	a := getVisitor(key, limitGeneral, burstGeneral)
	b := getVisitor(key, limitGeneral, burstGeneral)
	assert.Same(t, a, b)
}
