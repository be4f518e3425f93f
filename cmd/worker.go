package cmd

import (
	"room-booking-api/core/server"

	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the background directory refresh worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.RunWorker(configDir)
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
