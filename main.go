package main

import (
	"os"

	"github.com/ricardolfonseca/cryptocurrency-market-dashboard/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
