/*
Package config loads service configuration from environment variables and
web view creation profiles from disk.

Environment variables (envconfig):

	PORT, HOST                    HTTP listener
	LOG_LEVEL, LOG_DEV            logging
	ENGINE_SDK_INT                platform capability level of the headless engine
	ENGINE_FETCH_TIMEOUT          page fetch timeout
	ENGINE_SCRIPT_TIMEOUT         script run timeout
	ENGINE_RPS, ENGINE_BURST      page fetch rate limit
	ENGINE_MAX_RETRIES            page fetch retries
	ENGINE_USER_AGENT             default user agent
	ENGINE_MAX_BODY_BYTES         page size cap
	ENGINE_BREAKER_FAILURES       consecutive host failures before fetches to it fail fast (0 disables)
	ENGINE_BREAKER_TIMEOUT        how long a host stays unavailable
	RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
	                              per-client HTTP rate limit
	WEBVIEW_PROFILE               creation profile (.yaml, .yml or .toml)

A creation profile supplies default creation parameters (settings, channel
names, cookies, initial URL) that are merged under the parameters of every
create call.
*/
package config
