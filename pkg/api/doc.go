// Package api provides the HTTP client used for all workspace API calls.
//
// # Overview
//
// The client wraps outbound GET requests with bearer-token authentication,
// a client-side rate limiter, bounded per-attempt timeouts, and a
// configurable retry policy. Responses are decoded into typed structs
// supplied by the caller.
//
// # Outcome Classification
//
// Each attempt is classified before a retry decision is made:
//
//   - network/timeout errors and HTTP 429/5xx are transient: the call is
//     retried until the policy budget is exhausted, then surfaces
//     SERVICE_UNAVAILABLE
//   - HTTP 401/403 fails immediately with UNAUTHORIZED (never retried)
//   - HTTP 404 fails immediately with NOT_FOUND (never retried; callers may
//     treat it as an empty result for optional resources)
//   - HTTP 2xx with an undecodable body fails with INVALID_RESPONSE
//
// # Usage
//
//	client := api.NewClient(baseURL, token,
//	    api.WithRetryPolicy(api.RetryPolicy{MaxAttempts: 5}),
//	)
//
//	var resp clustersListResponse
//	if err := client.Get(ctx, "/api/2.0/clusters/list", nil, &resp); err != nil {
//	    return err
//	}
//
// Every call is logged with endpoint, outcome, and attempt count.
package api
