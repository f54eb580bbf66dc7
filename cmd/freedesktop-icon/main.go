// freedesktop-icon - resolve freedesktop icon names to files
//
// freedesktop-icon locates icon themes, walks their inheritance chain and
// resolves icon names to SVG, PNG or XPM files on disk.
//
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/galister/freedesktop/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
