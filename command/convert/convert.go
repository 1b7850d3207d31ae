package convert

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"mv2-creator/connectors/config"
	"mv2-creator/creator"
)

// Run executes the convert subcommand: read one MV1 workbook and write the
// MV2 report next to it (or into -out).
//
// Usage:
//
//	mv2 convert -in <mv1.xlsx> [-out <dir>] [-csv]
func Run(args []string) error {
	return run(args, os.Stdout)
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	in := fs.String("in", "", "MV1 workbook to convert (or pass it as the first argument)")
	out := fs.String("out", "", "output directory (default: the input file's directory)")
	withCSV := fs.Bool("csv", false, "also write the report grid as CSV")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" && fs.NArg() > 0 {
		*in = fs.Arg(0)
	}
	if *in == "" {
		slog.Error("convert.validation.error", "reason", "missing input")
		return fmt.Errorf("please select a file first: -in is required")
	}

	cfg, err := config.Resolve()
	if err != nil {
		return err
	}
	if *withCSV {
		cfg.Report.CSV = true
	}
	c, err := creator.New(cfg)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	slog.Info("convert.start", "in", *in, "out", *out)
	path, err := c.Create(context.Background(), *in, *out)
	if err != nil {
		slog.Error("convert.error", "in", *in, "error", err)
		return fmt.Errorf("an error occurred: %w", err)
	}
	fmt.Fprintf(stdout, "Successfully created: %s\n", path)
	slog.Info("convert.done", "path", path)
	return nil
}
