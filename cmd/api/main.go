package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/dayplanner/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dayplanner",
		Short: "Day Planner API Server",
		Long:  `Day Planner is a personal calendar backend: authenticated users manage 15-minute-slot events viewed through a month grid.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
