// Package container defines the read-only view of a hierarchical, typed
// container (an HDF5 file in practice) that the table decoder consumes.
//
// The contract is deliberately small:
//
//	type Container interface {
//	    Group(path string) (Group, error)
//	    Close() error
//	}
//
//	type Group interface {
//	    Node
//	    Children() ([]string, error)
//	    Dataset(name string) (Dataset, error)
//	    Group(name string) (Group, error)
//	}
//
//	type Dataset interface {
//	    Node
//	    Len() (int, error)
//	    ReadStrings(start, end int) ([]string, error)
//	    ReadInts(start, end int) ([]int64, error)
//	}
//
// # Built-in Implementations
//
//   - MemoryContainer: in-memory tree for tests and fixtures
//   - hdf5.File: HDF5 files via github.com/scigolib/hdf5
//
// Implementations are not required to be safe for concurrent use.
package container
