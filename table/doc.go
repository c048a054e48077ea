// Package table decodes the columns of an AnnData table group (obs, var)
// into row aligned strings.
//
// A Catalog is built once per table: it lists the group's members, resolves
// each member's encoding-type and materializes the category/code buffers of
// categorical fields. String and integer columns are not materialized; they
// are read from the container on every range request.
//
//	cat, err := table.Build(c, "obs")
//	if err != nil {
//	    return err
//	}
//	r := table.NewReader(cat, table.WithChunkSize(500))
//	err = r.Chunks(func(start int, cols table.Columns) error {
//	    ...
//	})
//
// # Supported Encodings
//
//   - "string-array": variable-length strings, emitted verbatim
//   - "categorical": categories + codes sub-group, decoded in memory
//   - "array": integers, emitted in decimal
//
// Any other encoding is accepted at build time and fails with
// *ErrUnsupportedEncoding when read.
//
// Catalogs and readers are not safe for concurrent use; open one catalog
// per goroutine.
package table
