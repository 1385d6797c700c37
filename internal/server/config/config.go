// Package config handles configuration for the login server,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"runtime"
	"time"
)

// Config holds runtime settings for the login server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - DatabaseDSN: postgres:// URL (pgx) or SQLite file/URI.
//   - SecretKeyFile: path or s3://bucket/key of the HMAC token secret.
//   - TokenTTL: lifetime of issued tokens.
//   - RootCredentialFile: optional credential file provisioned at startup.
//   - HashWorkers: maximum concurrent password verifications.
//   - EqualizeTiming: run a dummy verification for unknown usernames.
//   - LogLevel: debug, info, warn or error.
//   - S3Region / S3BaseEndpoint / S3AccessKey / S3SecretKey: object storage
//     settings for s3:// secret locations. Empty keys use the default AWS
//     credential chain.
type Config struct {
	EndpointAddrHTTP   string
	DatabaseDSN        string
	SecretKeyFile      string
	TokenTTL           time.Duration
	RootCredentialFile string
	HashWorkers        int
	EqualizeTiming     bool
	LogLevel           string
	S3Region           string
	S3BaseEndpoint     string
	S3AccessKey        string
	S3SecretKey        string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = "0.0.0.0:4242"
	c.DatabaseDSN = "file:todoauth.db"
	c.SecretKeyFile = "secret.key"
	c.TokenTTL = time.Hour
	c.RootCredentialFile = ""
	c.HashWorkers = runtime.NumCPU()
	c.EqualizeTiming = false
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.S3AccessKey = ""
	c.S3SecretKey = ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
