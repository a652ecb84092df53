package main

import (
	"fmt"
	"os"

	"resume-builder/internal/bootstrap"
	"resume-builder/internal/cli"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/telemetry"
)

func main() {
	// Keep stdout for command output.
	telemetry.SetOutput(os.Stderr)

	cfg := config.Load()
	app, err := bootstrap.Build(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resumectl: %v\n", err)
		os.Exit(1)
	}

	cli.Configure(app.Store, app.Exporter)
	err = cli.Execute()
	app.Close()
	if err != nil {
		os.Exit(1)
	}
}
