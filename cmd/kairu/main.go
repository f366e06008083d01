// Package main implements the kairu CLI: the HTTP API server plus terminal
// tools for the same focus data.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var configPath string

var rootCmd = &cobra.Command{
	Use:          "kairu",
	Short:        "Kairu - focus timer, reminders and productivity tracking",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default $KAIRU_CONFIG)")
}
