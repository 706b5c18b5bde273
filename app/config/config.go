package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/mahesh-hegde/instante/app/dataset"
)

type StoreKind string

const (
	StoreMemory StoreKind = "memory"
	StoreSQLite StoreKind = "sqlite"
)

const configFileName = "config.json"

type InstanteConfig struct {
	InstanceName string `json:"instance_name"`
	DataDir      string `json:"-"`

	// Where uploaded datasets live. Defaults to memory.
	Store StoreKind `json:"store"`

	MaxUploadBytes    int64    `json:"max_upload_bytes"`
	AllowedExtensions []string `json:"allowed_extensions"`

	// 0 keeps datasets for the lifetime of the process.
	DatasetTTLSeconds    int `json:"dataset_ttl_seconds"`
	SuggestionTTLSeconds int `json:"suggestion_ttl_seconds"`

	TimeoutSeconds int      `json:"timeout_seconds"`
	LogLatency     bool     `json:"log_latency"`
	Hostnames      []string `json:"hostnames"`
	CorsOrigins    []string `json:"cors_origins"`
}

// ServerRuntimeConfig holds the options that come from command line flags
// rather than config.json.
type ServerRuntimeConfig struct {
	Addr               string
	Port               int
	CertDir            string
	AcmeEnabled        bool
	RateLimit          int
	GzipLevel          int
	BehindLoadBalancer bool
}

func DefaultConfig() *InstanteConfig {
	return &InstanteConfig{
		InstanceName:      "instante",
		Store:             StoreMemory,
		MaxUploadBytes:    dataset.DefaultMaxUploadBytes,
		AllowedExtensions: dataset.DefaultAllowedExtensions,
		Hostnames:         []string{"localhost"},
		CorsOrigins:       []string{"*"},
	}
}

// Load reads config.json from dataDir. A missing file gives the defaults;
// fields absent from the file keep their default values.
func Load(dataDir string) (*InstanteConfig, error) {
	conf := DefaultConfig()
	conf.DataDir = dataDir
	if dataDir == "" {
		return conf, nil
	}

	confFile, err := os.Open(path.Join(dataDir, configFileName))
	if os.IsNotExist(err) {
		return conf, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error while opening %s: %w", configFileName, err)
	}
	defer confFile.Close()

	if err := json.NewDecoder(confFile).Decode(conf); err != nil {
		return nil, fmt.Errorf("error while reading %s: %w", configFileName, err)
	}
	return conf, conf.validate()
}

func (c *InstanteConfig) validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
	case "":
		c.Store = StoreMemory
	default:
		return fmt.Errorf("unknown store %q, expected %q or %q", c.Store, StoreMemory, StoreSQLite)
	}
	if c.Store == StoreSQLite && c.DataDir == "" {
		return fmt.Errorf("store %q needs a data directory", StoreSQLite)
	}
	if c.MaxUploadBytes < 0 || c.DatasetTTLSeconds < 0 || c.SuggestionTTLSeconds < 0 || c.TimeoutSeconds < 0 {
		return fmt.Errorf("sizes and durations in %s must not be negative", configFileName)
	}
	if len(c.Hostnames) == 0 {
		c.Hostnames = []string{"localhost"}
	}
	return nil
}

func (c *InstanteConfig) UploadLimits() dataset.UploadLimits {
	return dataset.UploadLimits{
		MaxBytes:          c.MaxUploadBytes,
		AllowedExtensions: c.AllowedExtensions,
	}
}

func (c *InstanteConfig) DatasetTTL() time.Duration {
	return time.Duration(c.DatasetTTLSeconds) * time.Second
}

func (c *InstanteConfig) SuggestionTTL() time.Duration {
	return time.Duration(c.SuggestionTTLSeconds) * time.Second
}
