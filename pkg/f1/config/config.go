// Package config reads application settings from the process environment and from optional .env files.
package config

// Config is the read side of the application configuration.
type Config interface {
	Get(string) string
	GetOrDefault(string, string) string
}
