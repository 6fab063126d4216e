package config

import "time"

// Config holds runtime settings for the GophDrive CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - RequestTimeout: deadline applied to every server call.
//   - DownloadDir: where "get" stores files when no destination is given.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	DownloadDir        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 30 * time.Second
	c.DownloadDir = "."
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
