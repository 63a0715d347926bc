// Package main implements the main entry point for a CHIP-8 emulator
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(logger, opts)

	fe, err := createFrontend(opts)
	if err != nil {
		logger.Fatal("Creating frontend failed", log.Err(err))
	}

	result, err := runner.New(logger, fe).Execute(ctx, opts)
	if err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Running program failed", log.Err(err))
		os.Exit(1)
	}

	logger.Debug("Program finished",
		log.Int("frames", result.Frames),
		log.Int("instructions", result.Instructions),
		log.Int("beeps", result.Beeps))
}

func createFrontend(opts options.Program) (runner.Frontend, error) {
	if opts.Frontend == options.FrontendHeadless {
		return frontend.NewHeadless(os.Stdout), nil
	}

	term := frontend.NewTerminal(os.Stdin, os.Stdout)
	if err := term.Start(); err != nil {
		return nil, err
	}
	return term, nil
}

func printBanner(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}
	logger.Info("retrochip8", log.String("version", buildinfo.Version(version, commit, date)))
}
