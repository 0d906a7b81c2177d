package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/seclens/seclens/internal/seeder"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate a synthetic event dataset",
	Example: `  seclens seed --out data/events.json
  seclens seed --out data/events.json --count 2000 --days 30 --seed 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		count, _ := cmd.Flags().GetInt("count")
		days, _ := cmd.Flags().GetInt("days")
		seed, _ := cmd.Flags().GetInt64("seed")

		cfg := seeder.Config{
			Count:  count,
			Window: time.Duration(days) * 24 * time.Hour,
			Seed:   seed,
		}
		if err := seeder.NewGenerator(cfg).WriteFile(out); err != nil {
			return err
		}

		fmt.Printf("wrote %d events to %s\n", count, out)
		return nil
	},
}

func init() {
	seedCmd.Flags().String("out", "data/events.json", "output file path")
	seedCmd.Flags().Int("count", 500, "number of events to generate")
	seedCmd.Flags().Int("days", 7, "time window in days")
	seedCmd.Flags().Int64("seed", 0, "random seed (0 = time-based)")
	rootCmd.AddCommand(seedCmd)
}
