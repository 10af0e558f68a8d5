// Package resilience provides the timing primitives used around HTTP calls.
//
//   - Retry: retries a failed transport call with exponential backoff
//   - Backoff: computes exponential, jittered, capped delays
//   - Sleep: waits for a delay unless the context ends first
//
// The lro wait loop uses Backoff and Sleep for its poll interval; httpclient
// uses Retry when a RetryConfig is set. The lro and paging core never retry
// on their own.
//
//	cfg := resilience.DefaultRetryConfig()
//	resp, err := resilience.Retry(ctx, cfg, func() (*httpclient.Response, error) {
//	    return adapter.Do(ctx, req)
//	})
package resilience
