package main

import (
	"os"

	"github.com/mrrizkin/vite-plugin-backend/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
