// Package cmd contains the CLI entry points.
package cmd

import (
	"github.com/spf13/cobra"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "room-booking-api",
	Short: "Room booking recommendation service",
	Long: `Recommends bookable spaces for a requested time window, ranking them
by capacity fit, location preference and availability.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", ".", "Directory containing config.yaml")
}
