package cli

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cognitext/revana/pkg/revana/export"
)

var errNoRawSource = errors.New("no raw review source configured")

func init() {
	cmd := &cobra.Command{
		Use:   "preprocess",
		Short: "Run the NLP chain over stored records and export vocab/vectors",
		Run:   runPreprocess,
	}

	RootCmd.AddCommand(cmd)
}

func runPreprocess(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	cfg := loadConfig()

	eng := openEngine(ctx, cfg)
	defer eng.Close()

	res, err := eng.Preprocess(ctx)
	if err != nil {
		exitErr("preprocess", err)
	}

	vf := outFile(cfg, "vocab.txt")
	if err := export.WriteVocab(vf, res.Vocab); err != nil {
		exitErr("write vocab.txt", err)
	}
	vf.Close()

	cf := outFile(cfg, "countvec.txt")
	if err := export.WriteCountVectors(cf, res.GroupVectors); err != nil {
		exitErr("write countvec.txt", err)
	}
	cf.Close()

	slog.Info("preprocess complete",
		"run", res.RunID,
		"records", res.Stats.TotalReviews,
		"groups", res.Stats.TotalGroups,
		"tokens", res.TotalTokens,
		"vocab", res.Vocab.Len(),
		"bigrams", len(res.TopBigrams),
	)
}
