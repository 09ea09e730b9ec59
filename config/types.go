package config

// ServiceConfig points at the SmartZone service that owns the data.
type ServiceConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"required,url"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// StreamConfig tunes the persistent connection.
type StreamConfig struct {
	HeartbeatMS          int     `yaml:"heartbeatMS" validate:"gte=0"`
	BackoffBaseMS        int     `yaml:"backoffBaseMS" validate:"gte=0"`
	BackoffRatio         float64 `yaml:"backoffRatio" validate:"gte=0"`
	MaxReconnectAttempts int     `yaml:"maxReconnectAttempts" validate:"gte=0"`
}

// ProjectionConfig holds the dashboard view defaults.
type ProjectionConfig struct {
	TopZones       int `yaml:"topZones" validate:"gte=0"`
	RecentRequests int `yaml:"recentRequests" validate:"gte=0"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Service    ServiceConfig    `yaml:"service" validate:"required"`
	Stream     StreamConfig     `yaml:"stream"`
	Projection ProjectionConfig `yaml:"projection"`
}
