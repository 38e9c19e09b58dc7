// Package logger builds the application slog.Logger: text output in dev and
// staging, JSON in prod, tagged with the environment name.
package logger
