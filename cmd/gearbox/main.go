package main

import (
	"os"

	"github.com/gearbox-hq/gearbox/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
