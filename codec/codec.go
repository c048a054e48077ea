// Package codec centralizes the encoding of machine-readable output.
package codec

import (
	"errors"
	"fmt"
	"strings"
)

// Codec encodes values as JSON.
// Implementations must be safe for concurrent use.
type Codec interface {
	Name() string
	Marshal(v any) ([]byte, error)
	// Append appends the encoding of v to dst.
	Append(dst []byte, v any) ([]byte, error)
}

// ErrUnknownCodec is returned by ByName for names not in Names.
var ErrUnknownCodec = errors.New("unknown codec")

// Names returns the names accepted by ByName.
func Names() []string {
	return []string{GoJSON{}.Name(), JSON{}.Name()}
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, error) {
	switch name {
	case "json":
		return JSON{}, nil
	case "go-json":
		return GoJSON{}, nil
	default:
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownCodec, name, strings.Join(Names(), ", "))
	}
}

// AppendObject appends a JSON object whose members follow the order of
// keys. keys and values must have the same length.
func AppendObject(c Codec, dst []byte, keys, values []string) ([]byte, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("%d keys for %d values", len(keys), len(values))
	}
	dst = append(dst, '{')
	for i, k := range keys {
		if i > 0 {
			dst = append(dst, ',')
		}
		var err error
		if dst, err = c.Append(dst, k); err != nil {
			return nil, err
		}
		dst = append(dst, ':')
		if dst, err = c.Append(dst, values[i]); err != nil {
			return nil, err
		}
	}
	return append(dst, '}'), nil
}
