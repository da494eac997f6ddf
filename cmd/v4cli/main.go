package main

import (
	"os"

	"v4sdk/cmd/v4cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
