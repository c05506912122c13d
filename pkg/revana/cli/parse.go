package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cognitext/revana/pkg/revana/export"
	"github.com/cognitext/revana/pkg/revana/parse"
)

var (
	rawPath  string
	metaPath string
)

func init() {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a raw review dump into records and exports",
		Run:   runParse,
	}
	cmd.Flags().StringVar(&rawPath, "raw", "", "Raw review dump (overrides config)")
	cmd.Flags().StringVar(&metaPath, "metadata", "", "Metadata CSV (overrides config)")

	RootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	cfg := loadConfig()
	if rawPath != "" {
		cfg.Paths.RawReviews = rawPath
	}
	if metaPath != "" {
		cfg.Paths.Metadata = metaPath
	}
	if cfg.Paths.RawReviews == "" {
		exitErr("parse", errNoRawSource)
	}

	var meta *parse.Metadata
	if cfg.Paths.Metadata != "" {
		f, err := os.Open(cfg.Paths.Metadata)
		if err != nil {
			exitErr("open metadata", err)
		}
		meta, err = parse.LoadMetadataCSV(f)
		f.Close()
		if err != nil {
			// Malformed metadata is fatal: records parsed against a
			// broken source would be silently incomplete.
			exitErr("load metadata", err)
		}
	}

	eng := openEngine(ctx, cfg)
	defer eng.Close()

	raw, err := os.Open(cfg.Paths.RawReviews)
	if err != nil {
		exitErr("open raw source", err)
	}
	defer raw.Close()

	res, err := eng.ParseSource(ctx, raw, meta)
	if err != nil {
		exitErr("parse", err)
	}

	for _, d := range res.Report.Diagnostics {
		slog.Warn("skipped block", "block", d.Block, "reason", d.Reason)
	}

	counts := make(map[string]int64)
	textCounts := make(map[string]int64)
	for _, rec := range res.Records {
		if rec.ParentProductID == "" || rec.ParentProductID == parse.None {
			continue
		}
		counts[rec.ParentProductID]++
		if rec.ReviewText != "" && rec.ReviewText != parse.None {
			textCounts[rec.ParentProductID]++
		}
	}

	jf := outFile(cfg, "reviews.json")
	if err := export.WriteGroupedJSON(jf, res.Records); err != nil {
		exitErr("write reviews.json", err)
	}
	jf.Close()

	cf := outFile(cfg, "review_counts.csv")
	if err := export.WriteReviewCounts(cf, counts, textCounts); err != nil {
		exitErr("write review_counts.csv", err)
	}
	cf.Close()

	slog.Info("parse complete",
		"run", res.RunID,
		"blocks", res.Report.Blocks,
		"parsed", res.Report.Parsed,
		"skipped", res.Report.Skipped,
		"duplicates", res.Report.Duplicates,
	)
}
