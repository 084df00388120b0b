// Package main is the entry point for the webview bridge server.
//
// The server hosts headless WebViews for clients that speak the
// platform-view method channel protocol over a WebSocket:
//
//	Client (Dart side) ⇄ /stream ⇄ platform views ⇄ headless engine ⇄ the web
//
// The server provides:
//   - /stream: method channels over WebSocket, one UI thread per connection
//   - /views, /methods, /health: inspection endpoints
//   - /metrics: Prometheus exposition
//
// Configuration:
//   - Environment variables (PORT, LOG_LEVEL, ENGINE_*, WEBVIEW_PROFILE, RATE_LIMIT_*)
//   - CLI flags (override env vars)
//
// Usage:
//
//	./server -port 8000 -sdk 29 -profile ./profile.yaml
//
//	# Development mode (colored logs)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
