package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognitext/revana/pkg/revana/internalerr"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Tokens.MinLength != 3 {
		t.Errorf("Tokens.MinLength = %d, want 3", cfg.Tokens.MinLength)
	}
	if cfg.Stoplist.MinGroupFrac != 0.05 || cfg.Stoplist.MaxGroupFrac != 0.95 {
		t.Errorf("Stoplist band = %+v", cfg.Stoplist)
	}
	if cfg.Bigrams.MinFreq != 2 || cfg.Bigrams.TopK != 200 {
		t.Errorf("Bigrams = %+v", cfg.Bigrams)
	}
	if !cfg.Clean.StripHTML || !cfg.Clean.Lowercase {
		t.Errorf("Clean = %+v", cfg.Clean)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "revana.yaml")
	content := `paths:
  raw_reviews: data/reviews.txt
  metadata: data/meta.csv
tokens:
  min_length: 4
bigrams:
  top_k: 50
store:
  driver: memory
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Paths.RawReviews != "data/reviews.txt" {
		t.Errorf("RawReviews = %q", cfg.Paths.RawReviews)
	}
	if cfg.Tokens.MinLength != 4 {
		t.Errorf("MinLength = %d, want 4", cfg.Tokens.MinLength)
	}
	if cfg.Bigrams.TopK != 50 {
		t.Errorf("TopK = %d, want 50", cfg.Bigrams.TopK)
	}
	// Unset fields keep their defaults.
	if cfg.Bigrams.MinFreq != 2 {
		t.Errorf("MinFreq = %d, want default 2", cfg.Bigrams.MinFreq)
	}
	if cfg.Store.Driver != "memory" {
		t.Errorf("Store.Driver = %q", cfg.Store.Driver)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("REVANA_OUTPUT_DIR", "/tmp/revana-out")
	t.Setenv("REVANA_STORE_DRIVER", "memory")
	t.Setenv("REVANA_MIN_TOKEN_LEN", "2")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Paths.OutputDir != "/tmp/revana-out" {
		t.Errorf("OutputDir = %q", cfg.Paths.OutputDir)
	}
	if cfg.Store.Driver != "memory" {
		t.Errorf("Store.Driver = %q", cfg.Store.Driver)
	}
	if cfg.Tokens.MinLength != 2 {
		t.Errorf("MinLength = %d, want 2", cfg.Tokens.MinLength)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero min length", func(c *Config) { c.Tokens.MinLength = 0 }},
		{"frac above one", func(c *Config) { c.Stoplist.MaxGroupFrac = 1.5 }},
		{"empty band", func(c *Config) { c.Stoplist.MinGroupFrac = 0.95 }},
		{"zero top k", func(c *Config) { c.Bigrams.TopK = 0 }},
		{"bad driver", func(c *Config) { c.Store.Driver = "postgres" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
