/*
Package monitoring provides Prometheus metrics for the bridge.

# Overview

Metrics live on a private registry so that several collectors can coexist
in one process (tests create one per case). Tracked:

- HTTP requests (gin middleware)
- Inbound method calls by method and outcome, with dispatch latency
- Outbound events by method
- Live and created platform views
- Engine page loads
- WebSocket connections and messages

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	timer := monitoring.NewTimer(metrics, "loadUrl")
	// ... dispatch ...
	timer.Stop("success")
*/
package monitoring
