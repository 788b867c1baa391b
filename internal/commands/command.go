// Package commands holds the tasklist subcommands and the registry the CLI
// dispatches through.
package commands

import (
	"context"
	"flag"
	"io"

	"tasklist/internal/config"
	"tasklist/internal/service"
)

// Command is one tasklist subcommand.
//
// Task commands (demo, add, list) report NeedsService true. For them the
// dispatcher opens the repository named by --backend (memory, google or
// mysql), wraps it in a service.TaskService, and closes it after Run returns.
// Other commands (help, version, login, logout) never touch a repository and
// receive a nil service.
type Command interface {
	// Name is the primary command name shown in help.
	Name() string

	// Aliases are extra names that resolve to the same command.
	Aliases() []string

	// Synopsis is the one-line summary shown in help.
	Synopsis() string

	// Usage is the invocation line shown in help.
	Usage() string

	// NeedsService reports whether Run reads or writes tasks.
	NeedsService() bool

	// RegisterFlags adds command-specific flags next to the common ones.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command with the positional args left after flag
	// parsing and returns the process exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}
