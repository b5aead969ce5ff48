package middleware

import (
	pkgLog "appointment-calendar/pkg/log"
)

// Middleware bundles the cross-cutting gin middlewares.
type Middleware struct {
	l       pkgLog.Logger
	limiter *rateLimiter
}

// New creates the middleware set. requestsPerMin <= 0 disables rate limiting.
func New(l pkgLog.Logger, requestsPerMin int) Middleware {
	var limiter *rateLimiter
	if requestsPerMin > 0 {
		limiter = newRateLimiter(requestsPerMin)
	}
	return Middleware{
		l:       l,
		limiter: limiter,
	}
}
