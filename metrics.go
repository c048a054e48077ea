package adview

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordStage is called after a remote source is copied to a local file.
	// bytes is the blob size, duration is the total time taken, err is nil
	// if successful.
	RecordStage(bytes int64, duration time.Duration, err error)

	// RecordCatalog is called after the catalog of a table group is built.
	RecordCatalog(fields int, duration time.Duration, err error)

	// RecordRead is called after rows of a table have been decoded and
	// written.
	RecordRead(rows int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordStage(int64, time.Duration, error) {}
func (NoopMetricsCollector) RecordCatalog(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRead(int, time.Duration, error)    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	StageCount        atomic.Int64
	StageErrors       atomic.Int64
	StageBytes        atomic.Int64
	StageTotalNanos   atomic.Int64
	CatalogCount      atomic.Int64
	CatalogErrors     atomic.Int64
	CatalogFields     atomic.Int64
	CatalogTotalNanos atomic.Int64
	ReadCount         atomic.Int64
	ReadErrors        atomic.Int64
	ReadRows          atomic.Int64
	ReadTotalNanos    atomic.Int64
}

// RecordStage implements MetricsCollector.
func (b *BasicMetricsCollector) RecordStage(bytes int64, duration time.Duration, err error) {
	b.StageCount.Add(1)
	b.StageTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.StageErrors.Add(1)
		return
	}
	b.StageBytes.Add(bytes)
}

// RecordCatalog implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCatalog(fields int, duration time.Duration, err error) {
	b.CatalogCount.Add(1)
	b.CatalogTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.CatalogErrors.Add(1)
		return
	}
	b.CatalogFields.Add(int64(fields))
}

// RecordRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRead(rows int, duration time.Duration, err error) {
	b.ReadCount.Add(1)
	b.ReadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReadErrors.Add(1)
		return
	}
	b.ReadRows.Add(int64(rows))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		StageCount:      b.StageCount.Load(),
		StageErrors:     b.StageErrors.Load(),
		StageBytes:      b.StageBytes.Load(),
		StageAvgNanos:   avg(b.StageTotalNanos.Load(), b.StageCount.Load()),
		CatalogCount:    b.CatalogCount.Load(),
		CatalogErrors:   b.CatalogErrors.Load(),
		CatalogFields:   b.CatalogFields.Load(),
		CatalogAvgNanos: avg(b.CatalogTotalNanos.Load(), b.CatalogCount.Load()),
		ReadCount:       b.ReadCount.Load(),
		ReadErrors:      b.ReadErrors.Load(),
		ReadRows:        b.ReadRows.Load(),
		ReadAvgNanos:    avg(b.ReadTotalNanos.Load(), b.ReadCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	StageCount      int64
	StageErrors     int64
	StageBytes      int64
	StageAvgNanos   int64
	CatalogCount    int64
	CatalogErrors   int64
	CatalogFields   int64
	CatalogAvgNanos int64
	ReadCount       int64
	ReadErrors      int64
	ReadRows        int64
	ReadAvgNanos    int64
}
