package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces the environment variables, e.g. GOPHDRIVE_DATABASE_DSN.
const envPrefix = "GOPHDRIVE"

type envConfig struct {
	EndpointAddrGRPC             string        `envconfig:"GRPC_ADDR"`
	DatabaseDSN                  string        `envconfig:"DATABASE_DSN"`
	SecretKey                    string        `envconfig:"SECRET_KEY"`
	AccessTokenValidityDuration  time.Duration `envconfig:"ACCESS_TOKEN_TTL"`
	RefreshTokenValidityDuration time.Duration `envconfig:"REFRESH_TOKEN_TTL"`
	S3RootUser                   string        `envconfig:"S3_ROOT_USER"`
	S3RootPassword               string        `envconfig:"S3_ROOT_PASSWORD"`
	S3Bucket                     string        `envconfig:"S3_BUCKET"`
	S3Region                     string        `envconfig:"S3_REGION"`
	S3BaseEndpoint               string        `envconfig:"S3_BASE_ENDPOINT"`
	MaxUploadSize                int64         `envconfig:"MAX_UPLOAD_SIZE"`
	MetricsAddr                  string        `envconfig:"METRICS_ADDR"`
	LogFormat                    string        `envconfig:"LOG_FORMAT"`
}

// parseEnv overlays GOPHDRIVE_* variables. envconfig leaves fields alone
// when their variable is unset, so the struct is pre-filled with the
// current values and copied back afterwards.
func parseEnv(config *Config) {
	e := envConfig{
		EndpointAddrGRPC:             config.EndpointAddrGRPC,
		DatabaseDSN:                  config.DatabaseDSN,
		SecretKey:                    config.SecretKey,
		AccessTokenValidityDuration:  config.AccessTokenValidityDuration,
		RefreshTokenValidityDuration: config.RefreshTokenValidityDuration,
		S3RootUser:                   config.S3RootUser,
		S3RootPassword:               config.S3RootPassword,
		S3Bucket:                     config.S3Bucket,
		S3Region:                     config.S3Region,
		S3BaseEndpoint:               config.S3BaseEndpoint,
		MaxUploadSize:                config.MaxUploadSize,
		MetricsAddr:                  config.MetricsAddr,
		LogFormat:                    config.LogFormat,
	}

	if err := envconfig.Process(envPrefix, &e); err != nil {
		panic(err)
	}

	config.EndpointAddrGRPC = e.EndpointAddrGRPC
	config.DatabaseDSN = e.DatabaseDSN
	config.SecretKey = e.SecretKey
	config.AccessTokenValidityDuration = e.AccessTokenValidityDuration
	config.RefreshTokenValidityDuration = e.RefreshTokenValidityDuration
	config.S3RootUser = e.S3RootUser
	config.S3RootPassword = e.S3RootPassword
	config.S3Bucket = e.S3Bucket
	config.S3Region = e.S3Region
	config.S3BaseEndpoint = e.S3BaseEndpoint
	config.MaxUploadSize = e.MaxUploadSize
	config.MetricsAddr = e.MetricsAddr
	config.LogFormat = e.LogFormat
}
