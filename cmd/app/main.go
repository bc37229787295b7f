// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/awnumar/memguard"
	"github.com/urfave/cli/v3"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:     "app",
		Usage:    "Protected application settings with value coercion and enum mapping utilities",
		Version:  version,
		Commands: getCommands(version),
	}

	err := cmd.Run(context.Background(), os.Args)
	// Wipe locked key buffers before exiting.
	memguard.Purge()
	if err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
