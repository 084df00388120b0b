// Package middleware provides the HTTP middleware of the bridge server.
//
//   - CORS: cross-origin access to the inspection endpoints and the stream
//   - RateLimit: per-client token buckets, idle clients are forgotten
//   - GlobalRateLimit: one token bucket for every client
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
