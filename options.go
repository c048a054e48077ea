package adview

import (
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/hupe1980/adview/blobstore"
	"github.com/hupe1980/adview/container"
	"github.com/hupe1980/adview/container/hdf5"
	"github.com/hupe1980/adview/table"
)

// Opener opens a local file as a container.
type Opener func(path string) (container.Container, error)

// MinIOCredentials authenticate minio:// sources.
type MinIOCredentials struct {
	AccessKey string
	SecretKey string
	Secure    bool
}

type options struct {
	logger        *Logger
	metrics       MetricsCollector
	opener        Opener
	catalogOpts   []table.Option
	readerOpts    []table.ReaderOption
	stageOpts     []blobstore.StageOption
	s3ConfigOpts  []func(*config.LoadOptions) error
	minioCreds    *MinIOCredentials
	storeResolver func(Source) (blobstore.BlobStore, bool)
}

// Option configures Open, OpenURI and NewFile.
type Option func(*options)

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := adview.NewJSONLogger(slog.LevelInfo)
//	f, _ := adview.Open("pbmc.h5ad", adview.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for staging and
// catalog builds. Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &adview.BasicMetricsCollector{}
//	f, _ := adview.OpenURI(ctx, uri, adview.WithMetricsCollector(metrics))
//	// ... use f ...
//	stats := metrics.GetStats()
//	fmt.Printf("Staged: %d bytes in %dns\n", stats.StageBytes, stats.StageAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metrics = mc
	}
}

// WithOpener replaces the HDF5 reader used for local files.
func WithOpener(fn Opener) Option {
	return func(o *options) {
		o.opener = fn
	}
}

// WithChunkSize sets the rows per chunk of readers returned by File.Table.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.readerOpts = append(o.readerOpts, table.WithChunkSize(n))
	}
}

// WithStrictRowCount makes File.Table verify that every field has the
// same number of rows.
func WithStrictRowCount() Option {
	return func(o *options) {
		o.catalogOpts = append(o.catalogOpts, table.WithStrictRowCount())
	}
}

// WithStageOptions configures how remote sources are copied to local files.
//
// Example:
//
//	f, _ := adview.OpenURI(ctx, "s3://bucket/pbmc.h5ad",
//	    adview.WithStageOptions(blobstore.WithStageDir("/scratch"), blobstore.WithConcurrency(16)))
func WithStageOptions(optFns ...blobstore.StageOption) Option {
	return func(o *options) {
		o.stageOpts = append(o.stageOpts, optFns...)
	}
}

// WithS3Config passes load options to config.LoadDefaultConfig for s3://
// sources.
func WithS3Config(optFns ...func(*config.LoadOptions) error) Option {
	return func(o *options) {
		o.s3ConfigOpts = append(o.s3ConfigOpts, optFns...)
	}
}

// WithMinIOCredentials sets the credentials for minio:// sources. Without
// it they are read from MINIO_ACCESS_KEY, MINIO_SECRET_KEY and MINIO_SECURE.
func WithMinIOCredentials(creds MinIOCredentials) Option {
	return func(o *options) {
		o.minioCreds = &creds
	}
}

// WithStoreResolver overrides the blob store chosen for a remote source.
// The store must be rooted at the source's bucket; the blob name is
// Source.Key. Returning false falls back to the built-in stores.
func WithStoreResolver(fn func(Source) (blobstore.BlobStore, bool)) Option {
	return func(o *options) {
		o.storeResolver = fn
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
		opener:  openHDF5,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metrics == nil {
		o.metrics = NoopMetricsCollector{}
	}
	if o.opener == nil {
		o.opener = openHDF5
	}
	return o
}

func openHDF5(path string) (container.Container, error) {
	f, err := hdf5.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}
