// Package cli parses the command line and dispatches to commands.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasklist/internal/commands"
	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/repository"
	"tasklist/internal/service"
)

// DefaultCommand runs when no arguments are given.
const DefaultCommand = "demo"

// RepositoryFactory creates the repository for cfg.Backend.
// Used to inject the storage during dispatch.
type RepositoryFactory func(ctx context.Context, cfg *config.Config) (repository.Repository, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  RepositoryFactory
}

// NewDispatcher creates a new dispatcher with the given registry and repository factory.
// A nil factory selects OpenRepository.
func NewDispatcher(registry *commands.Registry, factory RepositoryFactory) *Dispatcher {
	if factory == nil {
		factory = OpenRepository
	}
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return d.dispatch(ctx, DefaultCommand, nil, out, errOut)
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	return d.dispatch(ctx, cmdName, args[1:], out, errOut)
}

func (d *Dispatcher) dispatch(ctx context.Context, cmdName string, args []string, out, errOut io.Writer) int {
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir, backend string
	var quiet, debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&backend, "backend", config.BackendMemory, "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", flagErrorMessage(err))
		return exitcode.UserError
	}

	// Parsing stops at "--"; anything after it is free text, dashes included
	positionalArgs := fs.Args()

	cfg, err := config.New(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}
	cfg.Backend = backend
	cfg.Quiet = quiet
	cfg.Debug = debug
	cfg.SetLogOutput(errOut)

	if !cmd.NeedsService() {
		return cmd.Run(ctx, cfg, nil, positionalArgs, out, errOut)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	cfg.Logger().Printf("opening %s repository", cfg.Backend)
	repo, err := d.factory(ctx, cfg)
	if err != nil {
		return reportOpenError(errOut, err)
	}

	svc, err := service.New(repo)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.BackendError
	}

	code := cmd.Run(ctx, cfg, svc, positionalArgs, out, errOut)

	if err := repository.Close(repo); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		if code == exitcode.Success {
			code = exitcode.BackendError
		}
	}
	return code
}

// flagErrorMessage turns flag package errors into the CLI's wording.
func flagErrorMessage(err error) string {
	errStr := err.Error()

	if strings.HasPrefix(errStr, "flag needs an argument:") {
		name := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
		return "flag needs an argument: " + name
	}
	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		name := strings.TrimSpace(strings.TrimPrefix(errStr, "flag provided but not defined:"))
		return "unknown flag: " + name
	}
	return errStr
}

// reportOpenError prints a repository open failure and picks the exit code.
func reportOpenError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, config.ErrUnknownBackend):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, ErrNoOAuthClient), errors.Is(err, ErrNotLoggedIn), errors.Is(err, ErrNoDSN):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
