package main

import (
	"github.com/ethanmoreau/bikejourney/cmd"

	// Subcommands register themselves on the root command via their
	// init() functions; the blank imports pull them in.
	_ "github.com/ethanmoreau/bikejourney/cmd/cli"
	_ "github.com/ethanmoreau/bikejourney/cmd/server"
)

func main() {
	cmd.Execute()
}
