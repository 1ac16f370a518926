package model

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	DefaultFeedsFile  string        = "feeds.txt"
	DefaultLedgerFile string        = "archive.log"
	DefaultArchiveDir string        = "Podcasts"
	DefaultUserAgent  string        = "Mozilla/5.0"
	DefaultTimeout    time.Duration = 10 * time.Minute
)

// Config is the run configuration, usually loaded from podarchiver.yaml
// by the configurator adapter and overridden by command line flags.
type Config struct {
	FeedsFile  string        `yaml:"feedsFile"`
	LedgerFile string        `yaml:"ledgerFile"`
	ArchiveDir string        `yaml:"archiveDir"`
	UserAgent  string        `yaml:"userAgent"`
	Timeout    time.Duration `yaml:"timeout"`
	// Tag writes ID3v2.4 tags into downloaded mp3 files.
	Tag bool `yaml:"tag"`
	// Index regenerates <show>/index.html after each feed.
	Index  bool         `yaml:"index"`
	Mirror MirrorConfig `yaml:"mirror"`
}

// MirrorConfig is only for the configuration, the S3 logic lives in
// the uploader adapter. Mirroring is disabled when Bucket is empty.
type MirrorConfig struct {
	Profile      string `yaml:"profile"`
	Region       string `yaml:"region"`
	Bucket       string `yaml:"bucket"`
	Prefix       string `yaml:"prefix,omitempty"`
	StorageClass string `yaml:"storageClass,omitempty"`
}

func (m MirrorConfig) Enabled() bool {
	return strings.TrimSpace(m.Bucket) != ""
}

// DefaultConfig returns a Config with every field set to its default.
func DefaultConfig() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// SetDefaults fills in empty fields.
func (c *Config) SetDefaults() {
	if strings.TrimSpace(c.FeedsFile) == "" {
		c.FeedsFile = DefaultFeedsFile
	}
	if strings.TrimSpace(c.LedgerFile) == "" {
		c.LedgerFile = DefaultLedgerFile
	}
	if strings.TrimSpace(c.ArchiveDir) == "" {
		c.ArchiveDir = DefaultArchiveDir
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Mirror.Enabled() && c.Mirror.StorageClass == "" {
		c.Mirror.StorageClass = "STANDARD"
	}
}

func (c *Config) FeedsFileExpanded() string {
	return resolvetilde(c.FeedsFile)
}

func (c *Config) LedgerFileExpanded() string {
	return resolvetilde(c.LedgerFile)
}

func (c *Config) ArchiveDirExpanded() string {
	return resolvetilde(c.ArchiveDir)
}

// resolvetilde returns path where initial tilde (~) is replaced by
// os.UserHomeDir().
func resolvetilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		dirname, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(dirname, path[2:])
	}
	return path
}
