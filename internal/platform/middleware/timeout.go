package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// RequestTimeout caps how long a single request may run. It wraps echo's
// timeout middleware, which buffers the handler's writes so a handler that
// overruns the deadline cannot race the timeout response. Handlers observe
// the deadline through the request context.
func RequestTimeout(timeout time.Duration) echo.MiddlewareFunc {
	return echomw.TimeoutWithConfig(echomw.TimeoutConfig{
		Timeout:      timeout,
		ErrorMessage: `{"error":"request processing exceeded the allowed time limit"}`,
	})
}
