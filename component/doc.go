// Package component defines lifecycle-managed infrastructure pieces of the
// service (database, redis, telemetry, HTTP server) and the Registry that
// starts them in order and stops them in reverse.
package component
