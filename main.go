package main

import (
	"os"

	"room-booking-api/cmd"
	"room-booking-api/core/logger"
)

func main() {
	if err := cmd.Execute(); err != nil {
		logger.Error("Main:Execute", "error", err)
		os.Exit(1)
	}
}
