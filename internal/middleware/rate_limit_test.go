package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_AllowWithinBurst(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 5)
	defer rl.Stop()

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "request %d within burst should pass", i)
	}
	assert.False(t, rl.Allow("10.0.0.1"), "request past burst should be rejected")
}

func TestRateLimiter_PerClientIsolation(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 1)
	defer rl.Stop()

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	// A different client has its own budget.
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestRateLimiter_MiddlewareReturns429(t *testing.T) {
	rl := NewRateLimiterWithConfig(60, 1)
	defer rl.Stop()

	e := echo.New()
	handler := rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		err := handler(c)
		if err != nil {
			e.HTTPErrorHandler(err, c)
		}
		return rec
	}

	first := do()
	assert.Equal(t, http.StatusOK, first.Code)

	second := do()
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "Rate limit exceeded")
}
