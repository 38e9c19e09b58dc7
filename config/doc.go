// Package config loads the dashboard configuration from an optional YAML file
// and environment variables. It covers the dashboard listen address, the feed
// endpoint, the poll interval and logging/metrics settings.
package config
