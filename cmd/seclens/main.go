package main

import (
	"os"

	"github.com/seclens/seclens/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
