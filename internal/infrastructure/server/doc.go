// Package server assembles the bridge's HTTP server: middleware, the
// inspection endpoints, the Prometheus endpoint and the /stream WebSocket
// transport.
package server
