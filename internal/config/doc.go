// Package config holds all configuration for the audit crawler.
//
// Configuration is assembled from CLI flags into a single Config struct
// and passed through the application by dependency injection; there is
// no global configuration state. An optional YAML file (.seolens)
// provides per-site overrides such as custom request headers or a
// different frontier cap.
package config
