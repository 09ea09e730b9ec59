package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration from config.yml
func LoadAppConfig() error {
	paths := []string{"config.yml", "./deploy/config.yml"}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}
	Config = cfg
	applyDefaults(&Config)
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Service.TimeoutMS == 0 {
		cfg.Service.TimeoutMS = 10000
	}
	if cfg.Stream.HeartbeatMS == 0 {
		cfg.Stream.HeartbeatMS = 30000
	}
	if cfg.Stream.BackoffBaseMS == 0 {
		cfg.Stream.BackoffBaseMS = 1000
	}
	if cfg.Stream.BackoffRatio == 0 {
		cfg.Stream.BackoffRatio = 1.5
	}
	if cfg.Stream.MaxReconnectAttempts == 0 {
		cfg.Stream.MaxReconnectAttempts = 5
	}
	if cfg.Projection.TopZones == 0 {
		cfg.Projection.TopZones = 10
	}
	if cfg.Projection.RecentRequests == 0 {
		cfg.Projection.RecentRequests = 50
	}
}

// WebSocketURL derives the stream endpoint from the service origin.
// The scheme follows the origin: https becomes wss, http becomes ws.
func WebSocketURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	case "http":
		u.Scheme = "ws"
	case "ws", "wss":
		// already a stream URL
	default:
		return "", fmt.Errorf("unsupported scheme %q in %s", u.Scheme, baseURL)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws/ws"
	return u.String(), nil
}
