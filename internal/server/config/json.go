package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/gophdrive/internal/flagx"
	"github.com/dmitrijs2005/gophdrive/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration file.
// Durations accept both "15m" style strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	S3RootUser                   string         `json:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	MaxUploadSize                int64          `json:"max_upload_size"`
	MetricsAddr                  *string        `json:"metrics_addr"`
	LogFormat                    string         `json:"log_format"`
}

// parseJson overlays values from the file named by -c / -config onto config.
// Keys missing from the file leave the current value untouched. An
// unreadable or malformed file panics, as the server cannot start sensibly.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration > 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.MaxUploadSize > 0 {
		config.MaxUploadSize = c.MaxUploadSize
	}
	// metrics_addr may be set to "" on purpose to disable the endpoint.
	if c.MetricsAddr != nil {
		config.MetricsAddr = *c.MetricsAddr
	}
	setString(&config.LogFormat, c.LogFormat)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
