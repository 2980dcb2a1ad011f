// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command dashboard is the terminal client for the AI dashboard.
//
// Each invocation is one action against the remote API. The session is kept
// in the configured storage area (a per-profile file by default), so a login
// in one command is visible to the next until logout or until the remote API
// rejects the token.
//
// # Startup Sequence
//
//  1. Parse global flags.
//  2. Load configuration from .env and environment variables, then apply flags.
//  3. Initialize the stderr logger.
//  4. Wire and hydrate the dashboard.
//  5. Dispatch the command.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/taibuivan/aidash/internal/app"
	"github.com/taibuivan/aidash/internal/platform/config"
	"github.com/taibuivan/aidash/internal/platform/constants"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// errReported marks a failure already printed to the user.
var errReported = errors.New("reported")

// globalFlags override the matching environment variables when set.
type globalFlags struct {
	api     string
	profile string
	backend string
	debug   bool
}

func (flags *globalFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&flags.api, "api", "", "remote API base URL (env API_BASE_URL)")
	flagSet.StringVar(&flags.profile, "profile", "", "session profile name (env SESSION_PROFILE)")
	flagSet.StringVar(&flags.backend, "session-backend", "", "session storage: memory, file or redis (env SESSION_BACKEND)")
	flagSet.BoolVar(&flags.debug, "debug", false, "log at debug level to stderr (env DEBUG)")
}

// apply copies explicitly set flags onto cfg and re-validates it.
func (flags *globalFlags) apply(flagSet *pflag.FlagSet, cfg *config.Client) error {
	if flagSet.Changed("api") {
		cfg.APIBaseURL = flags.api
	}
	if flagSet.Changed("profile") {
		cfg.SessionProfile = flags.profile
	}
	if flagSet.Changed("session-backend") {
		cfg.SessionBackend = flags.backend
	}
	if flagSet.Changed("debug") {
		cfg.Debug = flags.debug
	}
	return cfg.Validate()
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var flags globalFlags

	flagSet := pflag.NewFlagSet("dashboard", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flags.register(flagSet)
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(stderr, flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help || flagSet.NArg() == 0 {
		printHelp(stderr, flagSet)
		return nil
	}

	name, commandArgs := flagSet.Arg(0), flagSet.Args()[1:]
	command, found := commands[name]
	if !found {
		return fmt.Errorf("unknown command %q (run dashboard --help)", name)
	}

	// ── Configuration ─────────────────────────────────────────────────────
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	if _, set := os.LookupEnv("SESSION_BACKEND"); !set {
		// Each command is its own process; only the file backend outlives it.
		cfg.SessionBackend = config.BackendFile
	}
	if err := flags.apply(flagSet, cfg); err != nil {
		return err
	}

	// ── Wiring ────────────────────────────────────────────────────────────
	logger := app.NewLogger(stderr, cfg.Debug)
	dashboard, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer dashboard.Close()

	env := &environment{dashboard: dashboard, out: stdout, style: newTheme()}
	return command.run(ctx, env, commandArgs)
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, "%s %s\n\n", constants.AppName, constants.AppVersion)
	fmt.Fprint(w, `dashboard is the terminal client for the HR AI Platform and AutoSphere Motors.

Usage:
  dashboard [global flags] <command> [command flags]

Commands:
`)
	for _, name := range commandOrder {
		fmt.Fprintf(w, "  %-34s %s\n", commands[name].usage, commands[name].summary)
	}
	fmt.Fprint(w, "\nGlobal flags:\n")
	flagSet.PrintDefaults()
}
