package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hupe1980/adview"
	"github.com/hupe1980/adview/blobstore"
	"github.com/hupe1980/adview/codec"
	"github.com/spf13/cobra"
)

// openFile opens the FILE argument of every command. Tests replace it.
var openFile = func(ctx context.Context, uri string, optFns ...adview.Option) (*adview.File, error) {
	return adview.OpenURI(ctx, uri, optFns...)
}

// cliContext holds the values of the persistent flags.
type cliContext struct {
	logLevel    string
	logJSON     bool
	chunkSize   int
	strict      bool
	stageDir    string
	concurrency int
	ioLimit     int64
	stats       bool
	codecName   string

	logger  *adview.Logger
	metrics *adview.BasicMetricsCollector
	codec   codec.Codec
}

func (c *cliContext) options() []adview.Option {
	return []adview.Option{
		adview.WithLogger(c.logger),
		adview.WithMetricsCollector(c.metrics),
		adview.WithChunkSize(c.chunkSize),
		adview.WithStageOptions(
			blobstore.WithStageDir(c.stageDir),
			blobstore.WithConcurrency(c.concurrency),
			blobstore.WithIOLimit(c.ioLimit),
		),
	}
}

func (c *cliContext) open(cmd *cobra.Command, uri string) (*adview.File, error) {
	opts := c.options()
	if c.strict {
		opts = append(opts, adview.WithStrictRowCount())
	}
	return openFile(cmd.Context(), uri, opts...)
}

// setup resolves the persistent flags before any command runs.
func (c *cliContext) setup(cmd *cobra.Command, _ []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", c.logLevel, err)
	}
	jc, err := codec.ByName(c.codecName)
	if err != nil {
		return fmt.Errorf("invalid --json-codec: %w", err)
	}
	c.codec = jc
	c.metrics = &adview.BasicMetricsCollector{}
	hopts := &slog.HandlerOptions{Level: level}
	if c.logJSON {
		c.logger = adview.NewLogger(slog.NewJSONHandler(cmd.ErrOrStderr(), hopts))
	} else {
		c.logger = adview.NewLogger(slog.NewTextHandler(cmd.ErrOrStderr(), hopts))
	}
	return nil
}

// recordRead logs and records a read of rows starting at start.
func (c *cliContext) recordRead(cmd *cobra.Command, table string, start, rows int, begin time.Time, err error) {
	c.metrics.RecordRead(rows, time.Since(begin), err)
	c.logger.LogRead(cmd.Context(), table, start, rows, err)
}

func (c *cliContext) printStats(cmd *cobra.Command, _ []string) error {
	if !c.stats {
		return nil
	}
	s := c.metrics.GetStats()
	_, err := fmt.Fprintf(cmd.ErrOrStderr(),
		"staged %d bytes in %s, %d catalogs (%d fields), %d rows read in %s\n",
		s.StageBytes, time.Duration(s.StageAvgNanos*s.StageCount),
		s.CatalogCount, s.CatalogFields,
		s.ReadRows, time.Duration(s.ReadAvgNanos*s.ReadCount))
	return err
}

func newRootCmd() *cobra.Command {
	cli := &cliContext{}

	root := &cobra.Command{
		Use:   "adview",
		Short: "AnnData viewer: head, stream, shape and fields of h5ad files",
		Long: `
Prints the obs and var tables of AnnData (.h5ad) files as text.

FILE is a local path, file://path, s3://bucket/key or
minio://host[:port]/bucket/key. Remote files are copied to a temporary
file first. MinIO credentials are read from MINIO_ACCESS_KEY,
MINIO_SECRET_KEY and MINIO_SECURE; S3 uses the default AWS credential
chain.
`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE:  cli.setup,
		PersistentPostRunE: cli.printStats,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cli.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.BoolVar(&cli.logJSON, "log-json", false, "log as JSON")
	pf.IntVar(&cli.chunkSize, "chunk-size", 1000, "rows decoded per chunk")
	pf.BoolVar(&cli.strict, "strict", false, "verify that all fields have the same number of rows")
	pf.StringVar(&cli.stageDir, "stage-dir", "", "directory for temporary copies of remote files")
	pf.IntVar(&cli.concurrency, "stage-concurrency", 8, "parallel ranged reads when copying remote files")
	pf.BoolVar(&cli.stats, "stats", false, "print staging and read statistics to stderr")
	pf.Int64Var(&cli.ioLimit, "stage-io-limit", 0, "bytes per second when copying remote files (0 is unlimited)")
	pf.StringVar(&cli.codecName, "json-codec", codec.Default.Name(), "JSON encoder for --json and jsonl output ("+strings.Join(codec.Names(), ", ")+")")

	root.AddCommand(
		newHeadCmd(cli, adview.Obs, "oh"),
		newAllCmd(cli, adview.Obs, "oa"),
		newHeadCmd(cli, adview.Var, "vh"),
		newAllCmd(cli, adview.Var, "va"),
		newShapeCmd(cli),
		newFieldCmd(cli),
		newListCmd(cli),
		newExportCmd(cli),
	)
	return root
}

func tableFlagUsage() string {
	return strings.Join([]string{adview.Obs, adview.Var}, " or ")
}
