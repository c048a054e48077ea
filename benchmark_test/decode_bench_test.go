package benchmark_test

import (
	"fmt"
	"io"
	"testing"

	"github.com/hupe1980/adview"
	"github.com/hupe1980/adview/export"
	"github.com/hupe1980/adview/table"
	"github.com/hupe1980/adview/testutil"
)

// Run benchmarks: go test -bench=. -run=^$ ./benchmark_test/...

func newCatalog(b *testing.B, rows int) *table.Catalog {
	b.Helper()
	c := testutil.NewAnnData(testutil.NewRNG(42), rows, 16)
	cat, err := table.Build(c, adview.Obs)
	if err != nil {
		b.Fatalf("build: %v", err)
	}
	return cat
}

func BenchmarkBuild(b *testing.B) {
	for _, rows := range []int{1_000, 100_000} {
		b.Run(fmt.Sprintf("rows=%d", rows), func(b *testing.B) {
			c := testutil.NewAnnData(testutil.NewRNG(42), rows, 16)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := table.Build(c, adview.Obs); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkReadChunk(b *testing.B) {
	cat := newCatalog(b, 100_000)

	for _, size := range []int{100, 1_000, 10_000} {
		b.Run(fmt.Sprintf("chunk=%d", size), func(b *testing.B) {
			r := table.NewReader(cat, table.WithChunkSize(size))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				start := (i * size) % cat.RowCount()
				if _, err := r.ReadChunk(start, size); err != nil {
					b.Fatal(err)
				}
			}
			b.ReportMetric(float64(size*b.N)/b.Elapsed().Seconds(), "rows/s")
		})
	}
}

func BenchmarkStream(b *testing.B) {
	cat := newCatalog(b, 50_000)

	for _, format := range []export.Format{export.FormatTSV, export.FormatCSV, export.FormatJSONL} {
		b.Run(format.String(), func(b *testing.B) {
			r := table.NewReader(cat)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := export.Stream(r, export.NewRowWriter(io.Discard, format, nil), 0, -1); err != nil {
					b.Fatal(err)
				}
			}
			b.ReportMetric(float64(cat.RowCount()*b.N)/b.Elapsed().Seconds(), "rows/s")
		})
	}
}

func BenchmarkCompressedStream(b *testing.B) {
	cat := newCatalog(b, 50_000)

	for _, c := range []export.Compression{export.CompressionGzip, export.CompressionZSTD, export.CompressionLZ4} {
		b.Run(c.String(), func(b *testing.B) {
			r := table.NewReader(cat)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				zw, err := export.NewCompressor(io.Discard, c)
				if err != nil {
					b.Fatal(err)
				}
				if err := export.Stream(r, export.NewCSVWriter(zw), 0, -1); err != nil {
					b.Fatal(err)
				}
				if err := zw.Close(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSummaries(b *testing.B) {
	cat := newCatalog(b, 100_000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cat.Summaries()
	}
}
