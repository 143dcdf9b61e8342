// Package main writes realm bridge stubs.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/realmbridge/internal/platform/cmd"
	"github.com/louisbranch/realmbridge/internal/platform/config"
	"github.com/louisbranch/realmbridge/internal/tools/bridgegen"
)

func main() {
	cfg, err := bridgegen.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.ExitCodef(config.ExitUsage, "Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	err = cmd.RunWithTelemetry(ctx, cmd.ServiceBridgegen, func(ctx context.Context) error {
		return bridgegen.Run(ctx, cfg, os.Stdout, os.Stderr)
	})
	if err != nil {
		config.Exitf("Error: %v", err)
	}
}
