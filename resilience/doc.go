// Package resilience holds the circuit breaker that shields request paths
// from an optional backing service that has stopped answering.
//
//	cb := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("user-cache"))
//	err := cb.Execute(func() error {
//	    return cache.Ping(ctx)
//	})
//	if errors.Is(err, resilience.ErrCircuitOpen) {
//	    // skip the dependency
//	}
package resilience
