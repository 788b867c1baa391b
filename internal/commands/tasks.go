package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/output"
	"tasklist/internal/service"
)

// DemoTasks are the descriptions added by the demo command, in order.
var DemoTasks = []string{"Walk the dog", "Do homework", "Cook dinner"}

func init() {
	Register(&DemoCmd{})
	Register(&AddCmd{})
	Register(&ListCmd{})
}

// DemoCmd adds the sample tasks and prints the list.
// It runs when tasklist is invoked without arguments.
type DemoCmd struct{}

func (c *DemoCmd) Name() string       { return "demo" }
func (c *DemoCmd) Aliases() []string  { return nil }
func (c *DemoCmd) Synopsis() string   { return "Add the sample tasks and print them" }
func (c *DemoCmd) Usage() string      { return "tasklist demo [common flags]" }
func (c *DemoCmd) NeedsService() bool { return true }

func (c *DemoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DemoCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	for _, description := range DemoTasks {
		if err := svc.AddTask(ctx, description); err != nil {
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			return exitcode.BackendError
		}
		cfg.Logger().Printf("added %q", description)
	}
	return printTasks(ctx, svc, out, errOut)
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string       { return "add" }
func (c *AddCmd) Aliases() []string  { return []string{"create"} }
func (c *AddCmd) Synopsis() string   { return "Add a task and print the list" }
func (c *AddCmd) Usage() string      { return "tasklist add [common flags] [--] <description...>" }
func (c *AddCmd) NeedsService() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// No validation: an empty description is stored as-is
	description := strings.Join(args, " ")

	if err := svc.AddTask(ctx, description); err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	cfg.Logger().Printf("added %q", description)
	return printTasks(ctx, svc, out, errOut)
}

// ListCmd implements the list command.
type ListCmd struct{}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "Print the task list" }
func (c *ListCmd) Usage() string      { return "tasklist list [common flags]" }
func (c *ListCmd) NeedsService() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	return printTasks(ctx, svc, out, errOut)
}

// printTasks fetches all tasks and writes the formatted list.
func printTasks(ctx context.Context, svc service.Service, out, errOut io.Writer) int {
	tasks, err := svc.AllTasks(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
	output.FormatTaskList(out, tasks)
	return exitcode.Success
}
