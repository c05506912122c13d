// Package config loads the pipeline configuration from a YAML file,
// with optional overrides from the process environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cognitext/revana/pkg/revana/internalerr"
)

// Config holds every tunable of the pipeline.
type Config struct {
	Paths    Paths    `yaml:"paths"`
	Clean    Clean    `yaml:"clean"`
	Tokens   Tokens   `yaml:"tokens"`
	Stoplist Stoplist `yaml:"stoplist"`
	Bigrams  Bigrams  `yaml:"bigrams"`
	Store    Store    `yaml:"store"`
}

// Paths locates the input sources and output directory.
type Paths struct {
	RawReviews string `yaml:"raw_reviews"`
	Metadata   string `yaml:"metadata"`
	Stoplist   string `yaml:"stoplist"`
	OutputDir  string `yaml:"output_dir"`
}

// Clean toggles the text normalization steps.
type Clean struct {
	StripHTML  bool `yaml:"strip_html"`
	StripEmoji bool `yaml:"strip_emoji"`
	ASCIIOnly  bool `yaml:"ascii_only"`
	Lowercase  bool `yaml:"lowercase"`
	Normalize  bool `yaml:"normalize"`
}

// Tokens controls tokenization.
type Tokens struct {
	MinLength int `yaml:"min_length"`
}

// Stoplist holds the document-frequency band used to flag stopword
// candidates: terms appearing in fewer than MinGroupFrac or at least
// MaxGroupFrac of product groups are dropped.
type Stoplist struct {
	MinGroupFrac float64 `yaml:"min_group_frac"`
	MaxGroupFrac float64 `yaml:"max_group_frac"`
}

// Bigrams controls collocation selection.
type Bigrams struct {
	MinFreq int `yaml:"min_freq"`
	TopK    int `yaml:"top_k"`
}

// Store selects the persistence backend.
type Store struct {
	Driver string `yaml:"driver"` // "sqlite" or "memory"
	Path   string `yaml:"path"`
}

// Default returns the configuration used when a field is absent from
// the file.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: "out",
		},
		Clean: Clean{
			StripHTML:  true,
			StripEmoji: true,
			ASCIIOnly:  true,
			Lowercase:  true,
			Normalize:  true,
		},
		Tokens:   Tokens{MinLength: 3},
		Stoplist: Stoplist{MinGroupFrac: 0.05, MaxGroupFrac: 0.95},
		Bigrams:  Bigrams{MinFreq: 2, TopK: 200},
		Store:    Store{Driver: "sqlite", Path: "revana.db"},
	}
}

// Load reads the configuration file, layered over the defaults and
// under any environment overrides. An empty path yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overrides path settings from REVANA_* environment
// variables. A .env file in the working directory is honored when
// present.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("REVANA_RAW_REVIEWS"); v != "" {
		c.Paths.RawReviews = v
	}
	if v := os.Getenv("REVANA_METADATA"); v != "" {
		c.Paths.Metadata = v
	}
	if v := os.Getenv("REVANA_STOPLIST"); v != "" {
		c.Paths.Stoplist = v
	}
	if v := os.Getenv("REVANA_OUTPUT_DIR"); v != "" {
		c.Paths.OutputDir = v
	}
	if v := os.Getenv("REVANA_STORE_DRIVER"); v != "" {
		c.Store.Driver = v
	}
	if v := os.Getenv("REVANA_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("REVANA_MIN_TOKEN_LEN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Tokens.MinLength = n
		}
	}
}

// Validate rejects parameter values outside their domains.
func (c *Config) Validate() error {
	if c.Tokens.MinLength < 1 {
		return fmt.Errorf("%w: tokens.min_length must be >= 1", internalerr.ErrInvalidConfig)
	}
	if c.Stoplist.MinGroupFrac < 0 || c.Stoplist.MinGroupFrac > 1 {
		return fmt.Errorf("%w: stoplist.min_group_frac outside [0,1]", internalerr.ErrInvalidConfig)
	}
	if c.Stoplist.MaxGroupFrac < 0 || c.Stoplist.MaxGroupFrac > 1 {
		return fmt.Errorf("%w: stoplist.max_group_frac outside [0,1]", internalerr.ErrInvalidConfig)
	}
	if c.Stoplist.MinGroupFrac >= c.Stoplist.MaxGroupFrac {
		return fmt.Errorf("%w: stoplist band is empty", internalerr.ErrInvalidConfig)
	}
	if c.Bigrams.MinFreq < 1 {
		return fmt.Errorf("%w: bigrams.min_freq must be >= 1", internalerr.ErrInvalidConfig)
	}
	if c.Bigrams.TopK < 1 {
		return fmt.Errorf("%w: bigrams.top_k must be >= 1", internalerr.ErrInvalidConfig)
	}
	switch c.Store.Driver {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("%w: unknown store driver %q", internalerr.ErrInvalidConfig, c.Store.Driver)
	}
	return nil
}
