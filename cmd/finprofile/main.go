package main

import (
	"os"

	"github.com/finprofile-dev/finprofile/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
