// Package cmd implements the CLI application converting HomeBank files to
// hledger journals.
package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Commands lists the subcommands of the application.
// A main package registers them on a commander and executes the selected one.
var Commands = []subcommands.Command{
	&convertCmd{},
	&queryCmd{},
	&topicCmd{},
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering is not possible.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
