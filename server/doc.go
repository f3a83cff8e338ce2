// Package server runs the HTTP server: a Gin engine behind an h2c handler so
// HTTP/1.1 and cleartext HTTP/2 clients share one port.
//
// Request-wide middleware (server/middleware) wraps the whole handler in this
// order: recovery, request id, request logging, CORS, body size limit. Route
// level middleware such as tracing is installed on the Gin engine.
//
// Operational endpoints (server/endpoint):
//
//   - /health: component health aggregation
//   - /alive: liveness probe
package server
