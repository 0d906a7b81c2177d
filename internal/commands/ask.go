package commands

import (
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/seclens/seclens/internal/config"
	"github.com/seclens/seclens/internal/history"
	"github.com/seclens/seclens/internal/logging"
	"github.com/seclens/seclens/internal/service"
	"github.com/seclens/seclens/internal/store"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-shot question against the local dataset",
	Example: `  seclens ask "show me failed logins from yesterday"
  seclens ask "how many vpn connections this week"
  seclens ask "suspicious activity from 192.168.1.50"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// Keep the terminal clean; only warnings and errors surface.
		logger := logging.New(slog.LevelWarn, "text")

		eventStore := store.New()
		_ = eventStore.Load(cfg.Dataset.Path)

		svc := service.New(eventStore, history.NewMemoryStore(), nil, logger)
		resp, err := svc.Process(cmd.Context(), "cli", args[0])
		if err != nil {
			return err
		}

		bold := color.New(color.Bold)
		cyan := color.New(color.FgCyan)
		red := color.New(color.FgRed)
		yellow := color.New(color.FgYellow)

		bold.Println(resp.Results.Narrative)
		fmt.Println()

		stats := resp.Results.Stats
		cyan.Printf("events: %d  unique IPs: %d  unique users: %d  high risk: %d  (%s)\n",
			stats.TotalEvents, stats.UniqueIPs, stats.UniqueUsers, stats.HighRiskEvents, stats.TimeRange)
		fmt.Println()

		for _, e := range resp.Results.Events {
			line := fmt.Sprintf("%s  %-18s %-16s %s",
				e.Timestamp.Format("2006-01-02 15:04:05"), e.EventType, e.SrcIP, e.Message)
			switch e.RiskLevel {
			case "high":
				red.Println(line)
			case "medium":
				yellow.Println(line)
			default:
				fmt.Println(line)
			}
		}

		showDSL, _ := cmd.Flags().GetBool("show-query")
		if showDSL {
			fmt.Println()
			bold.Println("Query:")
			fmt.Println(resp.Results.QueryDSL)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().Bool("show-query", false, "print the rendered query DSL")
	rootCmd.AddCommand(askCmd)
}
