/*
Package resilience provides circuit breakers for page fetches.

# Usage

	breakers := resilience.NewGroup(resilience.Settings{
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	err := breakers.Do(host, func() error {
		return fetch(host)
	})

# States

- Closed: requests pass through
- Open: requests fail immediately with ErrCircuitOpen
- Half-Open: MaxRequests trial requests are let through

# Pattern

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                    [failure]
	                                           |
	                                           v
	                                         Open
*/
package resilience
