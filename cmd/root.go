package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/ethanmoreau/bikejourney/internal/config"
	"github.com/spf13/cobra"
)

// Cfg is the global variable that will contain the loaded configuration
// It is accessible to all Cobra commands throughout the application
var Cfg *config.Config

// RootCmd is the base command for the CLI application
// All other commands (run-server, migrate, create-landmark, stats) are added as subcommands
var RootCmd = &cobra.Command{
	Use:   "bikejourney",
	Short: "Backend for the 3D bike journey portfolio site",
	Long: `Backend for the 3D bike journey portfolio site: landmark registry,
visit tracking with daily analytics aggregates, and a moderated guestbook.`,
}

// Execute is the main entry point for the Cobra application
// It is called from 'main.go' and handles command execution and error handling
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

// init sets up configuration loading before any command runs.
// Commands are not added here: each command registers itself on RootCmd
// from its own init(), which keeps the packages decoupled and prevents
// import cycles.
func init() {
	cobra.OnInitialize(initConfig)
}

// initConfig loads the application configuration.
// It runs at the beginning of every Cobra command execution thanks to
// `cobra.OnInitialize(initConfig)` set up above.
func initConfig() {
	var err error

	Cfg, err = config.LoadConfig()
	if err != nil {
		log.Printf("Warning: Problem loading configuration: %v. Using default values.", err)
	}
}
