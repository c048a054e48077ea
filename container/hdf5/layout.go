package hdf5

import (
	"fmt"
	"strconv"
	"strings"
)

// Datatype classes as reported by Dataset.Info.
const (
	classInteger = "integer"
	classFloat   = "float"
	classString  = "string"
	classVarLen  = "class_9"
)

// layout is the storage description of a dataset.
type layout struct {
	class      string
	size       int
	dims       []uint64
	contiguous bool
	address    uint64
}

// parseInfo parses the summary produced by Dataset.Info, e.g.
//
//	Dataset: integer (size=1 bytes), 1D array [4], contiguous (address=0x8A0, size=4)
//
// The library exposes no typed accessor for the datatype, dataspace and
// layout messages, so this string is the only public view of them.
func parseInfo(info string) (*layout, error) {
	rest, ok := strings.CutPrefix(info, "Dataset: ")
	if !ok {
		return nil, fmt.Errorf("unexpected dataset info %q", info)
	}
	dtype, rest, ok := strings.Cut(rest, "), ")
	if !ok {
		return nil, fmt.Errorf("unexpected dataset info %q", info)
	}
	space, storage, ok := strings.Cut(rest, ", ")
	if !ok {
		return nil, fmt.Errorf("unexpected dataset info %q", info)
	}

	l := &layout{}
	if _, err := fmt.Sscanf(dtype, "%s (size=%d bytes", &l.class, &l.size); err != nil {
		return nil, fmt.Errorf("parse datatype %q: %w", dtype, err)
	}

	dims, err := parseDims(space)
	if err != nil {
		return nil, err
	}
	l.dims = dims

	if strings.HasPrefix(storage, "contiguous ") {
		var n uint64
		if _, err := fmt.Sscanf(storage, "contiguous (address=0x%X, size=%d)", &l.address, &n); err != nil {
			return nil, fmt.Errorf("parse layout %q: %w", storage, err)
		}
		l.contiguous = true
	}
	return l, nil
}

func parseDims(space string) ([]uint64, error) {
	switch space {
	case "scalar":
		return []uint64{1}, nil
	case "null":
		return []uint64{0}, nil
	}
	open := strings.IndexByte(space, '[')
	end := strings.LastIndexByte(space, ']')
	if open < 0 || end < open {
		return nil, fmt.Errorf("unexpected dataspace %q", space)
	}
	fields := strings.FieldsFunc(space[open+1:end], func(r rune) bool { return r == ' ' || r == 'x' })
	dims := make([]uint64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse dataspace %q: %w", space, err)
		}
		dims = append(dims, n)
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("unexpected dataspace %q", space)
	}
	return dims, nil
}
