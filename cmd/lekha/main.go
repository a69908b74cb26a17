package main

import (
	"os"

	"github.com/askhade/lekha/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
