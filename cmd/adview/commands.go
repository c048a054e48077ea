package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hupe1980/adview"
	"github.com/hupe1980/adview/export"
	"github.com/hupe1980/adview/table"
	"github.com/spf13/cobra"
)

func newHeadCmd(cli *cliContext, name, alias string) *cobra.Command {
	var (
		lines  int
		format string
	)
	cmd := &cobra.Command{
		Use:     name + "-head FILE",
		Aliases: []string{alias},
		Short:   fmt.Sprintf("show the first n rows of %s", name),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if lines < 0 {
				return fmt.Errorf("--lines must not be negative")
			}
			return withTable(cli, cmd, args[0], name, func(r *table.Reader) error {
				w, err := cli.rowWriter(cmd.OutOrStdout(), format)
				if err != nil {
					return err
				}
				begin := time.Now()
				err = export.Stream(r, w, 0, lines)
				cli.recordRead(cmd, name, 0, min(lines, r.RowCount()), begin, err)
				return err
			})
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 10, "number of rows to show")
	cmd.Flags().StringVar(&format, "format", "tsv", formatUsage)
	return cmd
}

func newAllCmd(cli *cliContext, name, alias string) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     name + "-all FILE",
		Aliases: []string{alias},
		Short:   fmt.Sprintf("show all rows of %s", name),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTable(cli, cmd, args[0], name, func(r *table.Reader) error {
				w, err := cli.rowWriter(cmd.OutOrStdout(), format)
				if err != nil {
					return err
				}
				begin := time.Now()
				err = export.IgnoreBrokenPipe(export.Stream(r, w, 0, -1))
				cli.recordRead(cmd, name, 0, r.RowCount(), begin, err)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "tsv", formatUsage)
	return cmd
}

func newShapeCmd(cli *cliContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "shape FILE",
		Aliases: []string{"s"},
		Short:   "show the shapes of obs and var",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := cli.open(cmd, args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			s, err := f.Shape()
			if err != nil {
				return err
			}
			if asJSON {
				return cli.writeJSON(cmd, map[string]int{adview.Obs: s.Obs, adview.Var: s.Var})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "obs shape: %d\n", s.Obs)
			fmt.Fprintf(out, "var shape: %d\n", s.Var)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newFieldCmd(cli *cliContext) *cobra.Command {
	var verbose, asJSON bool
	cmd := &cobra.Command{
		Use:     "field FILE",
		Aliases: []string{"f"},
		Short:   "show the fields of obs and var",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := cli.open(cmd, args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			if asJSON {
				all := map[string][]table.FieldSummary{}
				for _, name := range []string{adview.Obs, adview.Var} {
					if all[name], err = f.Fields(name); err != nil {
						return err
					}
				}
				return cli.writeJSON(cmd, all)
			}

			out := cmd.OutOrStdout()
			for i, name := range []string{adview.Obs, adview.Var} {
				fields, err := f.Fields(name)
				if err != nil {
					return err
				}
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s fields:\n", name)
				for _, s := range fields {
					fmt.Fprintf(out, "\t%s (%s)", s.Name, s.Tag)
					if verbose && s.Encoding == table.EncodingCategorical {
						fmt.Fprintf(out, " %d categories, %d used", s.Categories, s.UsedCategories)
						if s.InvalidCodes > 0 {
							fmt.Fprintf(out, ", %d invalid codes", s.InvalidCodes)
						}
					}
					fmt.Fprintln(out)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show category usage of categorical fields")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func newListCmd(cli *cliContext) *cobra.Command {
	var start, count int
	cmd := &cobra.Command{
		Use:     "list FILE TABLE FIELD",
		Aliases: []string{"l"},
		Short:   "list the values of one field as numbered lines",
		Long:    "Lists one field of TABLE (" + tableFlagUsage() + ") as \"<row>: <value>\" lines, numbered from 1.",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTable(cli, cmd, args[0], args[1], func(r *table.Reader) error {
				begin := time.Now()
				err := export.IgnoreBrokenPipe(export.ListField(r, args[2], export.NewListWriter(cmd.OutOrStdout()), start, count))
				cli.recordRead(cmd, args[1], start, rowsIn(r, start, count), begin, err)
				return err
			})
		},
	}
	cmd.Flags().IntVar(&start, "start", 0, "first row (0-based)")
	cmd.Flags().IntVar(&count, "count", -1, "number of rows (-1 for all remaining)")
	return cmd
}

func newExportCmd(cli *cliContext) *cobra.Command {
	var (
		format, output, compress string
		start, count             int
		atomic                   bool
	)
	cmd := &cobra.Command{
		Use:     "export FILE TABLE",
		Aliases: []string{"e"},
		Short:   "write a table to a file",
		Long: `
Writes TABLE (` + tableFlagUsage() + `) to --output, or stdout when --output
is "-". The compression defaults to the output extension (.gz, .zst, .lz4).
With --atomic all rows are decoded before the output is created, so a
decode error leaves an existing output file untouched. Otherwise a failed
export removes the output file.
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := export.ParseFormat(format); err != nil {
				return err
			}
			c := export.CompressionFromPath(output)
			if compress != "" {
				var err error
				if c, err = export.ParseCompression(compress); err != nil {
					return err
				}
			}
			return withTable(cli, cmd, args[0], args[1], func(r *table.Reader) error {
				out := &exportOutput{path: output, stdout: cmd.OutOrStdout(), compression: c}
				open := func() (export.RowWriter, error) {
					zw, err := out.open()
					if err != nil {
						return nil, err
					}
					return cli.rowWriter(zw, format)
				}

				begin := time.Now()
				var err error
				if atomic {
					err = export.Materialize(r, open, start, count)
				} else {
					var w export.RowWriter
					if w, err = open(); err == nil {
						err = export.Stream(r, w, start, count)
					}
				}
				if cerr := out.close(err); err == nil {
					err = cerr
				}
				cli.recordRead(cmd, args[1], start, rowsIn(r, start, count), begin, err)
				return export.IgnoreBrokenPipe(err)
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", "csv", formatUsage)
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output path")
	cmd.Flags().StringVar(&compress, "compress", "", "compression (none, gzip, zstd, lz4)")
	cmd.Flags().IntVar(&start, "start", 0, "first row (0-based)")
	cmd.Flags().IntVar(&count, "count", -1, "number of rows (-1 for all remaining)")
	cmd.Flags().BoolVar(&atomic, "atomic", false, "decode all rows before writing")
	return cmd
}

func withTable(cli *cliContext, cmd *cobra.Command, uri, name string, fn func(*table.Reader) error) error {
	f, err := cli.open(cmd, uri)
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := f.Table(name)
	if err != nil {
		return err
	}
	return fn(r)
}

// rowsIn returns the number of rows in [start, start+count), clamped to
// the table. A negative count means all remaining rows.
func rowsIn(r *table.Reader, start, count int) int {
	n := max(r.RowCount()-start, 0)
	if count >= 0 {
		n = min(n, count)
	}
	return n
}

const formatUsage = "output format (tsv, csv, pretty, jsonl)"

func (c *cliContext) writeJSON(cmd *cobra.Command, v any) error {
	b, err := c.codec.Marshal(v)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(append(b, '\n'))
	return err
}

func (c *cliContext) rowWriter(w io.Writer, format string) (export.RowWriter, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	return export.NewRowWriter(w, f, c.codec), nil
}

// exportOutput creates the export destination on first use.
type exportOutput struct {
	path        string
	stdout      io.Writer
	compression export.Compression

	f  *os.File
	zw io.WriteCloser
}

func (o *exportOutput) open() (io.Writer, error) {
	var dst io.Writer = o.stdout
	if o.path != "-" {
		f, err := os.Create(o.path)
		if err != nil {
			return nil, err
		}
		o.f, dst = f, f
	}
	zw, err := export.NewCompressor(dst, o.compression)
	if err != nil {
		return nil, err
	}
	o.zw = zw
	return zw, nil
}

// close flushes and closes whatever open created. The output file is
// removed if err or closing fails.
func (o *exportOutput) close(err error) error {
	var cerr error
	if o.zw != nil {
		cerr = o.zw.Close()
	}
	if o.f != nil {
		if ferr := o.f.Close(); cerr == nil {
			cerr = ferr
		}
		if err != nil || cerr != nil {
			_ = os.Remove(o.path)
		}
	}
	return cerr
}
