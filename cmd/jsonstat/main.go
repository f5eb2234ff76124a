// Command jsonstat inspects JSON-stat datasets and prints pivot tables.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/robert-malhotra/go-jsonstat/export"
	"github.com/robert-malhotra/go-jsonstat/internal/config"
	"github.com/robert-malhotra/go-jsonstat/internal/logging"
	"github.com/robert-malhotra/go-jsonstat/jsonstat"
)

// errUsage is returned when the command line is incomplete. The flag set
// has already printed its usage.
var errUsage = errors.New("usage")

func main() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	logger.Debug("configuration loaded", "config", cfg.String())

	os.Exit(run(os.Args[1:], cfg, logger, os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(args []string, cfg *config.Config, logger *slog.Logger, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}

	c := &cli{cfg: cfg, logger: logger, stdout: stdout, stderr: stderr}

	var err error
	switch args[0] {
	case "info":
		err = c.info(args[1:])
	case "table":
		err = c.table(args[1:])
	case "cell":
		err = c.cell(args[1:])
	case "export":
		err = c.export(args[1:])
	case "help", "-h", "-help", "--help":
		usage(stdout)
		return 0
	default:
		usage(stderr)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		fmt.Fprintf(stderr, "jsonstat %s: %v\n", args[0], err)
		return 1
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `jsonstat inspects JSON-stat datasets

Usage:
  jsonstat info <file>
  jsonstat table [-row DIM] [-col DIM] [-filter dim=cat,...] [-format text|csv|json] <file>
  jsonstat cell -at i,j,... <file>
  jsonstat export [-format parquet|csv] [-o out] <file>

Dimensions are given by id, label or position. Files may be JSON or YAML,
optionally compressed with gzip, zstd, lz4 or s2.

Environment:
  JSONSTAT_LOG_LEVEL, JSONSTAT_LOG_FORMAT, JSONSTAT_LOCALE,
  JSONSTAT_MISSING, JSONSTAT_TABLE_FORMAT, JSONSTAT_MAX_CELLS`)
}

type cli struct {
	cfg    *config.Config
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func (c *cli) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

// parse parses flags and returns the single file argument.
func (c *cli) parse(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", errUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(c.stderr, "%s: expected exactly one file argument\n", fs.Name())
		fs.Usage()
		return "", errUsage
	}
	return fs.Arg(0), nil
}

func (c *cli) open(path string) (*jsonstat.Dataset, error) {
	ds, err := jsonstat.Open(path,
		jsonstat.WithLocale(c.cfg.LocaleTag()),
		jsonstat.WithMissing(c.cfg.Output.Missing),
		jsonstat.WithMaxCells(c.cfg.Limits.MaxCells),
		jsonstat.WithLogger(logging.WithFields(c.logger, "file", path)),
	)
	if err != nil {
		var de *jsonstat.DecodeError
		if errors.As(err, &de) {
			c.logger.Debug("decode failed", "pointer", de.Path)
		}
		return nil, err
	}
	return ds, nil
}

func (c *cli) info(args []string) error {
	fs := c.flagSet("info")
	path, err := c.parse(fs, args)
	if err != nil {
		return err
	}
	ds, err := c.open(path)
	if err != nil {
		return err
	}

	w := c.stdout
	fmt.Fprintf(w, "Label:       %s\n", ds.Label())
	fmt.Fprintf(w, "Source:      %s\n", ds.Source())
	if !ds.Updated().IsZero() {
		fmt.Fprintf(w, "Updated:     %s\n", ds.Updated().Format("2006-01-02T15:04:05Z07:00"))
	}
	fmt.Fprintf(w, "Cells:       %d\n", ds.NumCells())
	fmt.Fprintf(w, "Fingerprint: %016x\n", ds.Fingerprint())
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tLABEL\tSIZE\tROLE")
	for _, dim := range ds.Dimensions() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", dim.Index, dim.ID, dim.Label, dim.Size(), dim.Role)
	}
	return tw.Flush()
}

func (c *cli) table(args []string) error {
	fs := c.flagSet("table")
	row := fs.String("row", "", "row dimension (default: largest dimension)")
	col := fs.String("col", "", "column dimension (default: second largest dimension)")
	filterExpr := fs.String("filter", "", "fixed categories, e.g. sex=Both sexes,Alder=15-74")
	format := fs.String("format", c.cfg.Output.TableFormat, "output format: text, csv or json")
	path, err := c.parse(fs, args)
	if err != nil {
		return err
	}

	filters, err := jsonstat.ParseFilters(*filterExpr)
	if err != nil {
		return err
	}

	ds, err := c.open(path)
	if err != nil {
		return err
	}

	rowRef, colRef := defaultAxes(ds)
	if *row != "" {
		rowRef = *row
	}
	if *col != "" {
		colRef = *col
	}

	grid, err := ds.TableByID(rowRef, colRef, filters)
	if err != nil {
		return err
	}
	c.logger.Debug("table built", "row", rowRef, "col", colRef, "filter", jsonstat.FormatFilters(filters))

	switch strings.ToLower(*format) {
	case "text":
		return writeText(c.stdout, grid)
	case "csv":
		return export.WriteCSV(c.stdout, grid)
	case "json":
		return export.WriteJSON(c.stdout, grid)
	default:
		return fmt.Errorf("unknown table format %q", *format)
	}
}

// defaultAxes picks the two largest dimensions, earlier dimensions first
// on ties, as rows and columns. A one-dimensional dataset gets no column
// default.
func defaultAxes(ds *jsonstat.Dataset) (row, col string) {
	dims := ds.Dimensions()
	slices.SortStableFunc(dims, func(a, b jsonstat.Dimension) int {
		return b.Size() - a.Size()
	})
	row = dims[0].ID
	if len(dims) > 1 {
		col = dims[1].ID
	}
	return row, col
}

func writeText(w io.Writer, grid [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, row := range grid {
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	return tw.Flush()
}

func (c *cli) cell(args []string) error {
	fs := c.flagSet("cell")
	at := fs.String("at", "", "coordinate, one category position per dimension, e.g. 0,0,9,1")
	path, err := c.parse(fs, args)
	if err != nil {
		return err
	}
	if *at == "" {
		fmt.Fprintln(c.stderr, "cell: -at is required")
		fs.Usage()
		return errUsage
	}

	coord, err := jsonstat.ParseCoordinate(*at)
	if err != nil {
		return err
	}
	ds, err := c.open(path)
	if err != nil {
		return err
	}
	cell, err := ds.CellAt(coord)
	if err != nil {
		return err
	}
	off, err := ds.Offset(coord)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	for i, id := range ds.IDs() {
		fmt.Fprintf(tw, "%s\t%s\n", id, cell.Labels[i])
	}
	fmt.Fprintf(tw, "offset\t%d\n", off)
	fmt.Fprintf(tw, "%s\t%s\n", cell.Value.Kind(), cell.Value)
	return tw.Flush()
}

func (c *cli) export(args []string) error {
	fs := c.flagSet("export")
	formatName := fs.String("format", "parquet", "output format: parquet or csv")
	out := fs.String("o", "-", "output file, - for stdout")
	path, err := c.parse(fs, args)
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(*formatName)
	if err != nil {
		return err
	}
	if format == export.FormatJSON {
		return errors.New("json is only available for tables, use: jsonstat table -format json")
	}

	ds, err := c.open(path)
	if err != nil {
		return err
	}

	if *out == "-" {
		err = writeExport(c.stdout, format, ds)
	} else {
		err = writeExportFile(*out, format, ds)
	}
	if err != nil {
		return err
	}

	c.logger.Info("dataset exported", "file", path, "format", format, "cells", ds.NumCells(), "out", *out)
	return nil
}

func writeExport(w io.Writer, format export.Format, ds *jsonstat.Dataset) error {
	switch format {
	case export.FormatParquet:
		return export.WriteParquet(w, ds)
	case export.FormatCSV:
		return export.WriteCellsCSV(w, ds)
	default:
		return fmt.Errorf("unsupported export format %s", format)
	}
}

// writeExportFile writes to path and reports a failed close, since that is
// where buffered data reaches the disk.
func writeExportFile(path string, format export.Format, ds *jsonstat.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeExport(f, format, ds); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
