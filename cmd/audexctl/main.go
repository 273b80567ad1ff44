package main

import (
	"os"

	"github.com/kailas-cloud/audex/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
