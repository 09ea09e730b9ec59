// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Missing stream and projection values fall back to the service defaults
// (30s heartbeat, 1000ms base backoff with ratio 1.5, 5 attempts).
package config
