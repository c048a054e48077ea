// Package hdf5 adapts github.com/scigolib/hdf5 to the container interfaces.
//
// The reader is pure Go, so no cgo or libhdf5 installation is required.
//
//	f, err := hdf5.Open("pbmc3k.h5ad")
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	obs, err := f.Group("obs")
//
// Object paths are normalized to absolute, slash separated form ("/obs/cell_type").
package hdf5
