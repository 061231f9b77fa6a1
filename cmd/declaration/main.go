package main

import (
	"os"

	"github.com/jask/declaration/cmd/declaration/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
