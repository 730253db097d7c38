package main

import (
	"os"

	"corebell/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(runEdit).Execute(); err != nil {
		os.Exit(1)
	}
}
