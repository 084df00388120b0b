// Package http provides the inspection endpoints of the bridge server.
//
// Endpoints:
//   - Service: / and /health
//   - Views: /views (sessions and their live platform views)
//   - Methods: /methods (the view channel method table)
//   - Metrics: /metrics/json (counter snapshot)
//
// Example Usage:
//
//	handlers := http.NewHandlers(streamHandler, metrics)
//	router.GET("/health", handlers.Health)
//	router.GET("/views", handlers.ListViews)
package http
