// Package adview reads the obs and var tables of AnnData (.h5ad) files.
//
// An h5ad file is an HDF5 container. Each table is a group whose members
// are its columns, in member order. A column is either a dataset (a
// string-array or an integer array) or a categorical group holding a
// categories dataset and a codes dataset. adview decodes every column to
// strings, row-aligned, so that rows can be emitted as text.
//
// # Quick Start
//
//	f, _ := adview.Open("pbmc3k.h5ad")
//	defer f.Close()
//
//	obs, _ := f.Obs()
//	cols, _ := obs.ReadChunk(0, 10)
//	for _, row := range export.Rows(cols) {
//	    fmt.Println(strings.Join(row, "\t"))
//	}
//
// # Remote Files
//
// OpenURI accepts s3:// and minio:// URIs. The object is staged to a
// temporary local file with parallel ranged reads before it is opened:
//
//	f, _ := adview.OpenURI(ctx, "s3://my-bucket/atlas/pbmc3k.h5ad",
//	    adview.WithStageOptions(blobstore.WithConcurrency(16)))
//
// # Streaming
//
// Readers page through a table in fixed-size chunks (1000 rows by
// default), so only one chunk of every column is decoded at a time:
//
//	obs.Chunks(func(start int, cols table.Columns) error {
//	    return w.WriteChunk(start, cols)
//	})
//
// Supported column encodings are string-array, categorical and array.
// Columns with any other encoding are listed but fail when read.
package adview
