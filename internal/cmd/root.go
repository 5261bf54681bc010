// Package cmd implements the searchcore command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "searchcore",
	Short: "query intelligence for transcript search",
	Long: `searchcore - query intelligence for political transcript search
  - type a few characters → ranked suggestions from history, trends, and interests
  - submit a query → enhanced search string plus insights about the results`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: XDG config dir)")

	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(enhanceCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
