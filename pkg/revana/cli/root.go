// Package cli implements the revana CLI commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognitext/revana/internal/logging"
	"github.com/cognitext/revana/pkg/revana"
	"github.com/cognitext/revana/pkg/revana/config"
	"github.com/cognitext/revana/pkg/revana/stoplist"
	"github.com/cognitext/revana/pkg/revana/store"
	"github.com/cognitext/revana/pkg/revana/store/memstore"
	"github.com/cognitext/revana/pkg/revana/store/sqlite"
)

var (
	configPath string
	logLevel   string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "revana",
	Short: "Product review NLP pipeline",
	Long: "Parses raw product-review dumps, normalizes and tokenizes the text,\n" +
		"and aggregates vocabulary, count vectors and corpus statistics.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logging.ParseLevel(logLevel))
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (YAML); defaults apply when omitted")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
}

func loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	return cfg
}

func openEngine(ctx context.Context, cfg config.Config) *revana.Revana {
	stops := stoplist.NewManager(nil)
	if cfg.Paths.Stoplist != "" {
		var err error
		stops, err = stoplist.Load(cfg.Paths.Stoplist)
		if err != nil {
			exitErr("load stoplist", err)
		}
	}

	var st store.Store
	var err error
	switch cfg.Store.Driver {
	case "memory":
		st = memstore.New()
	default:
		st, err = sqlite.Open(ctx, cfg.Store.Path)
		if err != nil {
			exitErr("open store", err)
		}
	}

	return revana.New(revana.Options{
		Store:    st,
		Pipeline: revana.BuildPipeline(cfg, stops),
		Config:   cfg,
	})
}

func outFile(cfg config.Config, name string) *os.File {
	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		exitErr("create output dir", err)
	}
	f, err := os.Create(cfg.Paths.OutputDir + "/" + name)
	if err != nil {
		exitErr("create "+name, err)
	}
	return f
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
