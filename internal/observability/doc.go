// Package observability provides structured logging, Prometheus metrics and
// OpenTelemetry tracing for the greeting server.
package observability
