package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "tasklist help" }
func (c *HelpCmd) NeedsService() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	writeUsage(out, DefaultRegistry)
	return exitcode.Success
}

// writeUsage prints one line per registered command, sorted by name.
func writeUsage(w io.Writer, r *Registry) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %-40s %s\n", "tasklist", "Add the sample tasks and print them")
	for _, cmd := range r.All() {
		fmt.Fprintf(w, "  %-40s %s\n", cmd.Usage(), cmd.Synopsis())
	}
	fmt.Fprint(w, helpFooter)
}

const helpFooter = `
Common flags:
  --config <dir>        Override config directory
  --backend <name>      Task storage: memory (default), google, mysql
  --quiet               Suppress informational output
  --debug               Print debug logs to stderr

The google backend needs oauth_client.json in the config directory and a
token from 'tasklist login'. The mysql backend reads its DSN from
TASKLIST_MYSQL_DSN. Both backends discard their tasks on exit.
`
