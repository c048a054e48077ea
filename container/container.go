package container

import "strings"

// Node is anything in the container that carries attributes.
type Node interface {
	// Path returns the absolute, slash separated path of the node.
	Path() string
	// Attr reads a string attribute.
	//
	// Returns *ErrAttributeMissing if the attribute does not exist and
	// *ErrAttributeTypeMismatch if it is not stored as text.
	Attr(key string) (string, error)
}

// Container is an open hierarchical store.
type Container interface {
	// Group opens the group at path. The empty path and "/" name the root.
	Group(path string) (Group, error)
	// Close releases the underlying handle.
	Close() error
}

// Group is a named collection of datasets and sub-groups.
type Group interface {
	Node
	// Children returns the names of the immediate members, in the order
	// the container reports them.
	Children() ([]string, error)
	// Dataset opens a member as a leaf dataset.
	// Returns an error satisfying errors.Is(err, ErrNotFound) if the
	// member does not exist or is not a dataset.
	Dataset(name string) (Dataset, error)
	// Group opens a member as a sub-group.
	// Returns *ErrGroupNotFound if the member does not exist or is not a group.
	Group(name string) (Group, error)
}

// Dataset is a one dimensional typed array.
type Dataset interface {
	Node
	// Len returns shape[0].
	Len() (int, error)
	// ReadStrings reads elements [start, end) as variable-length strings.
	ReadStrings(start, end int) ([]string, error)
	// ReadInts reads elements [start, end) as integers.
	ReadInts(start, end int) ([]int64, error)
}

// Join joins path segments with "/" and normalizes the result to an
// absolute path.
func Join(elem ...string) string {
	parts := make([]string, 0, len(elem))
	for _, e := range elem {
		for _, p := range strings.Split(e, "/") {
			if p != "" {
				parts = append(parts, p)
			}
		}
	}
	return "/" + strings.Join(parts, "/")
}
