package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http":   "www.example:9000",
		"database_dsn":         "accounts.db",
		"secret_key_file":      "/run/secrets/token",
		"token_ttl":            "2h",
		"root_credential_file": "root.cred",
		"hash_workers":         2,
		"equalize_timing":      true,
		"log_level":            "warn",
		"s3_region":            "region",
		"s3_base_endpoint":     "base_endpoint",
		"s3_access_key":        "access",
		"s3_secret_key":        "secret",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, "accounts.db", cfg.DatabaseDSN)
		assert.Equal(t, "/run/secrets/token", cfg.SecretKeyFile)
		assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
		assert.Equal(t, "root.cred", cfg.RootCredentialFile)
		assert.Equal(t, 2, cfg.HashWorkers)
		assert.True(t, cfg.EqualizeTiming)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, "region", cfg.S3Region)
		assert.Equal(t, "base_endpoint", cfg.S3BaseEndpoint)
		assert.Equal(t, "access", cfg.S3AccessKey)
		assert.Equal(t, "secret", cfg.S3SecretKey)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{
			"token_ttl": 60000000000,
		})
		os.Args = []string{"testbin", "-c", partial}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, time.Minute, cfg.TokenTTL)
		assert.Equal(t, "0.0.0.0:4242", cfg.EndpointAddrHTTP)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("no config flag, no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{EndpointAddrHTTP: "defaults:1234", TokenTTL: 3 * time.Minute, EqualizeTiming: true}
		parseJson(cfg)

		assert.Equal(t, "defaults:1234", cfg.EndpointAddrHTTP)
		assert.Equal(t, 3*time.Minute, cfg.TokenTTL)
		assert.True(t, cfg.EqualizeTiming)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		os.Args = []string{"testbin", "-config", bad}

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(dir, "absent.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
