package main

import (
	"os"

	"github.com/cognitext/revana/pkg/revana/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
