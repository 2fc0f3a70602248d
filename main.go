package main

import (
	"os"

	"github.com/isabella232/infrastructure-boxer/pkg/cli"
)

func main() {
	if err := cli.New().Run(os.Args); err != nil {
		os.Exit(1)
	}
}
