// Package httpserver runs the service's http.Handler with graceful shutdown
// on context cancellation or SIGINT/SIGTERM, and provides liveness and
// readiness probe handlers.
package httpserver
