package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"

	"github.com/hbtools/ledgerconv"
)

// Exit statuses of the convert command.
const (
	exitInputError      = subcommands.ExitStatus(1)
	exitConversionError = subcommands.ExitStatus(2)
	exitOutputError     = subcommands.ExitStatus(3)
)

type convertCmd struct {
	optionsFile string
	summary     bool
}

func (*convertCmd) Name() string { return "convert" }
func (*convertCmd) Synopsis() string {
	return "convert a HomeBank file into per-year hledger journals"
}
func (*convertCmd) Usage() string {
	return `ledgerconv convert [-options <file>] [-summary] <input.xhb> <output-dir>

  Reads a HomeBank .xhb file and writes one hledger journal per calendar
  year into the output directory, plus a main.journal that includes them
  all in ascending order.

Usage Examples:
# Convert finances.xhb into the journals directory.
$ ledgerconv convert finances.xhb ./journals

`
}

func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.optionsFile, "options", "", "YAML file overriding conversion options.")
	f.BoolVar(&c.summary, "summary", false, "Print a conversion summary after writing the journals.")
}

func (c *convertCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <input.xhb> and <output-dir> arguments")
		return subcommands.ExitUsageError
	}
	input, outDir := f.Arg(0), f.Arg(1)

	opts := ledgerconv.DefaultOptions()
	if c.optionsFile != "" {
		var err error
		opts, err = ledgerconv.LoadOptions(c.optionsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitInputError
		}
	}

	doc, status := decodeFile(input)
	if status != subcommands.ExitSuccess {
		return status
	}
	if err := ledgerconv.ValidateDocument(doc); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid document:\n%v\n", err)
		return exitInputError
	}

	conv, err := ledgerconv.Convert(doc, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: conversion failed: %v\n", err)
		return exitConversionError
	}
	for _, w := range conv.Warnings {
		log.Printf("warning: %s", w)
	}
	if len(conv.Years) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no transactions found, no journal files written.")
		return subcommands.ExitSuccess
	}

	if err := writeJournals(outDir, doc, conv); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitOutputError
	}

	if c.summary {
		printMarkdown(summaryMarkdown(conv))
	}
	return subcommands.ExitSuccess
}

// decodeFile opens and decodes a HomeBank file.
func decodeFile(path string) (*ledgerconv.Document, subcommands.ExitStatus) {
	in, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, exitInputError
	}
	defer in.Close()

	doc, err := ledgerconv.DecodeDocument(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not read %q: %v\n", path, err)
		return nil, exitInputError
	}
	return doc, subcommands.ExitSuccess
}

// writeJournals writes every year journal and the main.journal manifest.
func writeJournals(dir string, doc *ledgerconv.Document, conv *ledgerconv.Conversion) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create output directory: %w", err)
	}
	formatter := ledgerconv.NewAmountFormatter(doc)

	for _, year := range conv.Years {
		path := filepath.Join(dir, fmt.Sprintf("%d.journal", year.Year))
		if err := writeFile(path, func(f *os.File) error {
			return ledgerconv.EncodeJournal(f, year, formatter)
		}); err != nil {
			return err
		}
		log.Printf("wrote %s (%d transactions)", path, len(year.Transactions))
	}

	path := filepath.Join(dir, "main.journal")
	if err := writeFile(path, func(f *os.File) error {
		return ledgerconv.EncodeIndex(f, conv.Index)
	}); err != nil {
		return err
	}
	log.Printf("wrote %s", path)
	return nil
}

func writeFile(path string, encode func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("could not write %q: %w", path, err)
	}
	return f.Close()
}

// summaryMarkdown builds a short markdown report of the conversion.
func summaryMarkdown(conv *ledgerconv.Conversion) string {
	var b strings.Builder
	b.WriteString("# Conversion summary\n\n")
	b.WriteString("| Year | Transactions | Accounts | Payees |\n")
	b.WriteString("|------|--------------|----------|--------|\n")
	total := 0
	for _, y := range conv.Years {
		fmt.Fprintf(&b, "| %d | %d | %d | %d |\n", y.Year, len(y.Transactions), len(y.Accounts), len(y.Payees))
		total += len(y.Transactions)
	}
	fmt.Fprintf(&b, "\n%d journal file(s), %d transactions in total.\n", len(conv.Years), total)
	if len(conv.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range conv.Warnings {
			fmt.Fprintf(&b, "* %s\n", w)
		}
	}
	return b.String()
}
