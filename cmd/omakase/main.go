package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xavierfontaine/omakase/internal/app"
	"github.com/xavierfontaine/omakase/internal/cli"
	"github.com/xavierfontaine/omakase/internal/cli/iocli"
	"github.com/xavierfontaine/omakase/internal/config"
)

// closeTimeout bounds the final flush of sessions and storages
const closeTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	showConfig := flag.Bool("help-config", false, "Show configuration environment variables")
	configPath := flag.String("config", "", "Path to the YAML configuration file (default: $"+config.PathEnv+")")
	user := flag.String("user", os.Getenv("OMAKASE_USER"), "User whose collection is edited")
	flag.Parse()

	if *showVersion {
		printVersion()
		return 0
	}
	if *showConfig {
		fmt.Println(config.Usage())
		return 0
	}

	stdio := iocli.NewStdio()

	args := flag.Args()
	if len(args) == 0 {
		cli.New(stdio, nil, nil, *user, app.Version).PrintUsage()
		return 1
	}
	command := args[0]

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	logger := app.NewLogger(cfg.Log, os.Stderr)

	// Ctrl+C и SIGTERM завершают работу аккуратно
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
		defer cancel()
		if err := a.Close(closeCtx); err != nil {
			logger.Error("failed to close", slog.Any("error", err))
		}
	}()

	if command == "serve" {
		logger.Info("omakase starting",
			slog.String("version", app.BuildVersion()),
			slog.String("address", cfg.Server.Address),
		)
		if err := a.Server().Run(ctx); err != nil {
			logger.Error("server failed", slog.Any("error", err))
			return 1
		}
		return 0
	}

	c := cli.New(stdio, a.Sessions, a.Collection, *user, app.Version)
	if err := c.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printVersion() {
	fmt.Printf("omakase\n")
	fmt.Printf("Version:    %s\n", app.Version)
	fmt.Printf("Build Date: %s\n", app.BuildDate)
	fmt.Printf("Git Commit: %s\n", app.GitCommit)
}
