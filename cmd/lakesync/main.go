// Package main is the entry point for the lakesync binary.
package main

import (
	"os"

	"lakesync/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
