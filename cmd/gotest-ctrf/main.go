// Package main is the entry point for the gotest-ctrf CLI.
package main

import (
	"os"

	"github.com/AndreyAkinshin/gotest-ctrf/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
