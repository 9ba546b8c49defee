package main

import (
	"os"

	"github.com/cicd-demo/calcd/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
