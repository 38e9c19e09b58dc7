// Package httpserver wraps http.Server with address validation, early
// binding and graceful shutdown for the dashboard endpoints.
package httpserver
