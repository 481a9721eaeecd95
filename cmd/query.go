package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
)

type queryCmd struct {
	path string
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "inspect a HomeBank file with a JSONPath expression" }
func (*queryCmd) Usage() string {
	return `ledgerconv query [-q <jsonpath>] <input.xhb>

  Decodes the HomeBank file and evaluates a JSONPath expression against its
  normalized content. Useful for checking what the converter will see.

Usage Examples:
# List all account names.
$ ledgerconv query -q '$.Accounts.*.Name' finances.xhb

`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.path, "q", "$", "JSONPath expression to evaluate.")
}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected a single <input.xhb> argument")
		return subcommands.ExitUsageError
	}

	doc, status := decodeFile(f.Arg(0))
	if status != subcommands.ExitSuccess {
		return status
	}

	// Round-trip through JSON to get the generic structure jsonpath evaluates.
	raw, err := json.Marshal(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var jobj any
	if err := json.Unmarshal(raw, &jobj); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	jval, err := jsonpath.Get(c.path, jobj)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid query %q: %v\n", c.path, err)
		return subcommands.ExitUsageError
	}

	out, err := json.MarshalIndent(jval, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(out))
	return subcommands.ExitSuccess
}
