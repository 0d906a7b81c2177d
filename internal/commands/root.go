// Package commands defines the seclens command-line interface.
package commands

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "seclens",
	Short: "Conversational security event explorer",
	Long: `seclens answers natural-language questions about a security event
dataset. Ask about failed logins, VPN connections, malware, or specific
users and IPs, and get filtered events, aggregates, and charts back.`,
	Version: "0.1.0",
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to YAML config file")
}
