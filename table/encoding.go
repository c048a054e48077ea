package table

// Encoding identifies how a field is physically stored.
type Encoding uint8

const (
	// EncodingUnknown is any encoding-type tag the decoder does not support.
	EncodingUnknown Encoding = iota
	// EncodingStringArray is a dataset of variable-length strings.
	EncodingStringArray
	// EncodingCategorical is a group holding categories and codes.
	EncodingCategorical
	// EncodingIntArray is a dataset of integers.
	EncodingIntArray
)

// Encoding-type attribute values.
const (
	TagStringArray = "string-array"
	TagCategorical = "categorical"
	TagArray       = "array"
)

// EncodingTypeAttr is the attribute naming a field's encoding.
const EncodingTypeAttr = "encoding-type"

// ParseEncoding maps an encoding-type tag to an Encoding.
// Unrecognized tags map to EncodingUnknown.
func ParseEncoding(tag string) Encoding {
	switch tag {
	case TagStringArray:
		return EncodingStringArray
	case TagCategorical:
		return EncodingCategorical
	case TagArray:
		return EncodingIntArray
	default:
		return EncodingUnknown
	}
}

func (e Encoding) String() string {
	switch e {
	case EncodingStringArray:
		return TagStringArray
	case EncodingCategorical:
		return TagCategorical
	case EncodingIntArray:
		return TagArray
	default:
		return "unknown"
	}
}

// MarshalText encodes the encoding by its tag.
func (e Encoding) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}
