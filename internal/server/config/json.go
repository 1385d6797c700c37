package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/todoauth/internal/flagx"
	"github.com/dmitrijs2005/todoauth/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations
// accept either strings such as "1h" or integer nanoseconds. Pointer and
// zero-value fields left out of the file keep their current value.
type JsonConfig struct {
	EndpointAddrHTTP   string         `json:"endpoint_addr_http"`
	DatabaseDSN        string         `json:"database_dsn"`
	SecretKeyFile      string         `json:"secret_key_file"`
	TokenTTL           timex.Duration `json:"token_ttl"`
	RootCredentialFile string         `json:"root_credential_file"`
	HashWorkers        int            `json:"hash_workers"`
	EqualizeTiming     *bool          `json:"equalize_timing"`
	LogLevel           string         `json:"log_level"`
	S3Region           string         `json:"s3_region"`
	S3BaseEndpoint     string         `json:"s3_base_endpoint"`
	S3AccessKey        string         `json:"s3_access_key"`
	S3SecretKey        string         `json:"s3_secret_key"`
}

// parseJson overlays values from the JSON file named by -c or -config.
// Without either flag nothing is loaded. An unreadable file or invalid JSON
// panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
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

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKeyFile, c.SecretKeyFile)
	if c.TokenTTL.Duration != 0 {
		config.TokenTTL = c.TokenTTL.Duration
	}
	setString(&config.RootCredentialFile, c.RootCredentialFile)
	if c.HashWorkers != 0 {
		config.HashWorkers = c.HashWorkers
	}
	if c.EqualizeTiming != nil {
		config.EqualizeTiming = *c.EqualizeTiming
	}
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
