package adql

// TypeClass classifies the value produced by an operand.
//
// TypeUnknown is the distinct "not yet resolved" state: an unresolved column
// or a user-defined function without an attached signature. Its IsNumeric,
// IsString and IsGeometry views all answer true, so downstream compatibility
// checks accept an unresolved operand everywhere. This permissive default is
// deliberate and historical: it lets a Comparison silently accept a pairing
// that a later resolution step may reveal as incompatible. Callers that need
// to detect the unresolved state compare against TypeUnknown directly.
type TypeClass int

const (
	TypeUnknown TypeClass = iota
	TypeNumeric
	TypeString
	TypeGeometry
)

func (c TypeClass) String() string {
	switch c {
	case TypeNumeric:
		return "numeric"
	case TypeString:
		return "string"
	case TypeGeometry:
		return "geometry"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether an operand of this class may be used where a
// numeric value is required.
func (c TypeClass) IsNumeric() bool { return c == TypeNumeric || c == TypeUnknown }

// IsString reports whether an operand of this class may be used where a
// string value is required.
func (c TypeClass) IsString() bool { return c == TypeString || c == TypeUnknown }

// IsGeometry reports whether an operand of this class may be used where a
// geometric value is required.
func (c TypeClass) IsGeometry() bool { return c == TypeGeometry || c == TypeUnknown }

// comparable reports whether two operand classes can appear on the two sides
// of a comparison: both sides numeric, or both sides string. Geometries are
// never directly comparable (geometric relations go through functions).
func (c TypeClass) comparable(other TypeClass) bool {
	if c.IsNumeric() && other.IsNumeric() {
		return true
	}
	return c.IsString() && other.IsString()
}
