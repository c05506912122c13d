package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show corpus statistics for the stored records",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	cfg := loadConfig()

	eng := openEngine(ctx, cfg)
	defer eng.Close()

	st, err := eng.Stats(ctx)
	if err != nil {
		exitErr("stats", err)
	}

	b, _ := json.MarshalIndent(st, "", "  ")
	fmt.Println(string(b))
}
