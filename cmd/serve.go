package cmd

import (
	"room-booking-api/core/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Run(configDir)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
