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
	path := writeTempJSON(t, dir, "cfg.json", map[string]any{
		"endpoint_addr_http": "0.0.0.0:9000",
		"database_backend":   "memory",
		"session_backend":    "postgres",
		"redis_db":           2,
		"session_ttl":        "1h",
		"folder_path":        "/data/blobs",
		"s3_bucket":          "bucket",
		"password_cost":      4,
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "0.0.0.0:9000", cfg.EndpointAddrHTTP)
		assert.Equal(t, BackendMemory, cfg.DatabaseBackend)
		assert.Equal(t, BackendPostgres, cfg.SessionBackend)
		assert.Equal(t, 2, cfg.RedisDB)
		assert.Equal(t, time.Hour, cfg.SessionTTL)
		assert.Equal(t, "/data/blobs", cfg.FolderPath)
		assert.Equal(t, "bucket", cfg.S3Bucket)
		assert.Equal(t, 4, cfg.PasswordCost)

		// untouched keys keep their defaults
		assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
		assert.Equal(t, 10*time.Second, cfg.HealthCheckInterval)
	})

	t.Run("no config flag leaves config alone", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{FolderPath: "keep"}
		parseJson(cfg)

		assert.Equal(t, "keep", cfg.FolderPath)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		os.Args = []string{"testbin", "-c", bad}

		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "absent.json")}

		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
