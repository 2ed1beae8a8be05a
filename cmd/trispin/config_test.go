package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/trispin"
	"github.com/hupe1980/trispin/blobstore"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	assert.Equal(t, "none", cfg.Store.Kind)
	assert.Equal(t, trispin.DefaultCacheSize, cfg.CacheSize)
	assert.Equal(t, trispin.Params{Nx: 3, Ny: 3}, cfg.Params())

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
lattice:
  nx: 4
  ny: 3
  kx: 2
  ky: 1
  restricted: true
  nup: 6
workers: 0
cache_size: 0
limits:
  memory_bytes: 1048576
snapshot:
  codec: go-json
  compression: lz4
store:
  kind: " Local "
  path: /tmp/snaps
logging:
  level: debug
  format: JSON
`))
	require.NoError(t, err)

	assert.Equal(t, trispin.Params{Nx: 4, Ny: 3, Kx: 2, Ky: 1, Restricted: true, Nup: 6}, cfg.Params())
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 0, cfg.CacheSize)
	assert.Equal(t, int64(1048576), cfg.Limits.MemoryBytes)
	assert.Equal(t, "go-json", cfg.Snapshot.Codec)
	assert.Equal(t, "lz4", cfg.Snapshot.Compression)
	assert.Equal(t, "local", cfg.Store.Kind)
	assert.Equal(t, "/tmp/snaps", cfg.Store.Path)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Store.Secure)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "lattice: [1, 2"))
	assert.Error(t, err)
}

func TestEngineOptions(t *testing.T) {
	ctx := context.Background()

	cfg := defaultConfig()
	cfg.Store.Kind = "local"
	cfg.Store.Path = t.TempDir()
	cfg.Limits.StoreCacheBytes = 1 << 20
	opts, err := cfg.EngineOptions(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, opts)

	st, err := cfg.store(ctx, cfg.resourceController())
	require.NoError(t, err)
	assert.IsType(t, &blobstore.CachingStore{}, st)

	cfg.Limits.StoreCacheBytes = 0
	st, err = cfg.store(ctx, nil)
	require.NoError(t, err)
	assert.IsType(t, &blobstore.LocalStore{}, st)

	cfg.Store.Kind = "none"
	st, err = cfg.store(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, st)
}

func TestEngineOptionsErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "codec", mutate: func(c *Config) { c.Snapshot.Codec = "xml" }},
		{name: "compression", mutate: func(c *Config) { c.Snapshot.Compression = "gzip" }},
		{name: "level", mutate: func(c *Config) { c.Logging.Level = "loud" }},
		{name: "format", mutate: func(c *Config) { c.Logging.Format = "xml" }},
		{name: "store kind", mutate: func(c *Config) { c.Store.Kind = "ftp" }},
		{name: "s3 bucket", mutate: func(c *Config) { c.Store.Kind = "s3" }},
		{name: "minio endpoint", mutate: func(c *Config) {
			c.Store.Kind = "minio"
			c.Store.Bucket = "b"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			_, err := cfg.EngineOptions(ctx)
			assert.Error(t, err)
		})
	}
}
