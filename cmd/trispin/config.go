package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/trispin"
	"github.com/hupe1980/trispin/blobstore"
	miniostore "github.com/hupe1980/trispin/blobstore/minio"
	s3store "github.com/hupe1980/trispin/blobstore/s3"
	"github.com/hupe1980/trispin/codec"
	"github.com/hupe1980/trispin/resource"
	"github.com/hupe1980/trispin/snapshot"
)

// Config captures all options of the command line tool.
type Config struct {
	Lattice   LatticeConfig  `yaml:"lattice"`
	Workers   int            `yaml:"workers"`
	CacheSize int            `yaml:"cache_size"`
	Limits    LimitsConfig   `yaml:"limits"`
	Snapshot  SnapshotConfig `yaml:"snapshot"`
	Store     StoreConfig    `yaml:"store"`
	Logging   LoggingConfig  `yaml:"logging"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}

// LatticeConfig selects the symmetry sector.
type LatticeConfig struct {
	Nx         int  `yaml:"nx"`
	Ny         int  `yaml:"ny"`
	Kx         int  `yaml:"kx"`
	Ky         int  `yaml:"ky"`
	Restricted bool `yaml:"restricted"`
	Nup        int  `yaml:"nup"`
}

// LimitsConfig bounds the resources a run may use.
type LimitsConfig struct {
	MemoryBytes     int64 `yaml:"memory_bytes"`
	IOBytesPerSec   int64 `yaml:"io_bytes_per_sec"`
	StoreCacheBytes int64 `yaml:"store_cache_bytes"`
}

// SnapshotConfig controls how bases are persisted.
type SnapshotConfig struct {
	Codec       string `yaml:"codec"`
	Compression string `yaml:"compression"`
}

// StoreConfig selects the snapshot backend. Kind is one of "none", "local",
// "s3" or "minio".
type StoreConfig struct {
	Kind      string `yaml:"kind"`
	Path      string `yaml:"path"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	PathStyle bool   `yaml:"path_style"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

func defaultConfig() Config {
	return Config{
		Lattice:   LatticeConfig{Nx: 3, Ny: 3},
		Workers:   1,
		CacheSize: trispin.DefaultCacheSize,
		Snapshot: SnapshotConfig{
			Codec:       codec.Default.Name(),
			Compression: snapshot.CompressionZstd.String(),
		},
		Store: StoreConfig{
			Kind:   "none",
			Path:   "snapshots",
			Secure: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	normalizeConfig(&cfg)
	return cfg, nil
}

func normalizeConfig(cfg *Config) {
	cfg.Store.Kind = strings.ToLower(strings.TrimSpace(cfg.Store.Kind))
	if cfg.Store.Kind == "" {
		cfg.Store.Kind = "none"
	}
	cfg.Logging.Format = strings.ToLower(cfg.Logging.Format)
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	// zero disables the in-process cache
	cfg.CacheSize = max(cfg.CacheSize, 0)
}

// Params returns the sector parameters of the config.
func (c Config) Params() trispin.Params {
	return trispin.Params{
		Nx:         c.Lattice.Nx,
		Ny:         c.Lattice.Ny,
		Kx:         c.Lattice.Kx,
		Ky:         c.Lattice.Ky,
		Restricted: c.Lattice.Restricted,
		Nup:        c.Lattice.Nup,
	}
}

func (c Config) logger() (*trispin.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return nil, fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "text":
		return trispin.NewTextLogger(level), nil
	case "json":
		return trispin.NewJSONLogger(level), nil
	case "none":
		return trispin.NoopLogger(), nil
	default:
		return nil, fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
}

func (c Config) resourceController() *resource.Controller {
	return resource.NewController(resource.Config{
		MemoryLimitBytes:   c.Limits.MemoryBytes,
		MaxWorkers:         int64(c.Workers),
		IOLimitBytesPerSec: c.Limits.IOBytesPerSec,
	})
}

func (c Config) store(ctx context.Context, rc *resource.Controller) (blobstore.Store, error) {
	var (
		st  blobstore.Store
		err error
	)
	switch c.Store.Kind {
	case "none":
		return nil, nil
	case "local":
		st = blobstore.NewLocalStore(c.Store.Path, blobstore.WithIOController(rc))
	case "s3":
		if c.Store.Bucket == "" {
			return nil, fmt.Errorf("store.bucket is required for s3")
		}
		opts := []s3store.Option{
			s3store.WithPrefix(c.Store.Prefix),
			s3store.WithPathStyle(c.Store.PathStyle),
		}
		if c.Store.Region != "" {
			opts = append(opts, s3store.WithRegion(c.Store.Region))
		}
		if c.Store.Endpoint != "" {
			opts = append(opts, s3store.WithEndpoint(c.Store.Endpoint))
		}
		st, err = s3store.New(ctx, c.Store.Bucket, opts...)
	case "minio":
		if c.Store.Bucket == "" || c.Store.Endpoint == "" {
			return nil, fmt.Errorf("store.bucket and store.endpoint are required for minio")
		}
		st, err = miniostore.Connect(c.Store.Endpoint, c.Store.AccessKey, c.Store.SecretKey, c.Store.Secure, c.Store.Bucket, c.Store.Prefix)
	default:
		return nil, fmt.Errorf("store.kind: unknown kind %q", c.Store.Kind)
	}
	if err != nil {
		return nil, err
	}
	if c.Limits.StoreCacheBytes > 0 {
		st = blobstore.NewCachingStore(st, c.Limits.StoreCacheBytes, rc)
	}
	return st, nil
}

// EngineOptions translates the config into engine options.
func (c Config) EngineOptions(ctx context.Context) ([]trispin.Option, error) {
	logger, err := c.logger()
	if err != nil {
		return nil, err
	}
	cd, ok := codec.ByName(c.Snapshot.Codec)
	if !ok {
		return nil, fmt.Errorf("snapshot.codec: unknown codec %q", c.Snapshot.Codec)
	}
	comp, err := snapshot.ParseCompression(c.Snapshot.Compression)
	if err != nil {
		return nil, fmt.Errorf("snapshot.compression: %w", err)
	}

	rc := c.resourceController()
	st, err := c.store(ctx, rc)
	if err != nil {
		return nil, err
	}

	return []trispin.Option{
		trispin.WithLogger(logger),
		trispin.WithWorkers(c.Workers),
		trispin.WithCacheSize(c.CacheSize),
		trispin.WithResourceController(rc),
		trispin.WithCodec(cd),
		trispin.WithCompression(comp),
		trispin.WithStore(st),
	}, nil
}
