package adql

import "fmt"

// DatatypeKind enumerates the target types accepted by CAST.
type DatatypeKind int

const (
	DatatypeSmallint DatatypeKind = iota
	DatatypeInteger
	DatatypeBigint
	DatatypeReal
	DatatypeDouble
	DatatypeChar
	DatatypeVarchar
	DatatypeTimestamp
	DatatypePoint
	DatatypeRegion
)

func (k DatatypeKind) String() string {
	switch k {
	case DatatypeSmallint:
		return "SMALLINT"
	case DatatypeInteger:
		return "INTEGER"
	case DatatypeBigint:
		return "BIGINT"
	case DatatypeReal:
		return "REAL"
	case DatatypeDouble:
		return "DOUBLE PRECISION"
	case DatatypeChar:
		return "CHAR"
	case DatatypeVarchar:
		return "VARCHAR"
	case DatatypeTimestamp:
		return "TIMESTAMP"
	case DatatypePoint:
		return "POINT"
	case DatatypeRegion:
		return "REGION"
	default:
		return fmt.Sprintf("DATATYPE(%d)", int(k))
	}
}

// DatatypeKindOf resolves a kind from its (case-insensitive) name.
func DatatypeKindOf(name string) (DatatypeKind, bool) {
	for k := DatatypeSmallint; k <= DatatypeRegion; k++ {
		if identEqual(name, false, k.String(), false) {
			return k, true
		}
	}
	return 0, false
}

// class maps a datatype kind to its operand type class.
func (k DatatypeKind) class() TypeClass {
	switch k {
	case DatatypeSmallint, DatatypeInteger, DatatypeBigint, DatatypeReal, DatatypeDouble:
		return TypeNumeric
	case DatatypeChar, DatatypeVarchar, DatatypeTimestamp:
		return TypeString
	case DatatypePoint, DatatypeRegion:
		return TypeGeometry
	default:
		return TypeUnknown
	}
}

// sized reports whether the kind carries an optional length.
func (k DatatypeKind) sized() bool {
	return k == DatatypeChar || k == DatatypeVarchar
}

// Datatype is the target-type parameter of a CAST. It is a leaf operand
// whose type class is the class of the named type, so a CAST can delegate
// its own classification to it.
type Datatype struct {
	base
	kind   DatatypeKind
	length int // 0 = unspecified; only CHAR and VARCHAR carry one
}

// NewDatatype builds an unsized datatype parameter.
func NewDatatype(kind DatatypeKind) *Datatype {
	return &Datatype{kind: kind}
}

// NewSizedDatatype builds a CHAR(n) or VARCHAR(n) datatype parameter.
func NewSizedDatatype(kind DatatypeKind, length int) (*Datatype, error) {
	if !kind.sized() {
		return nil, fmt.Errorf("%w: %s does not take a length", ErrTypeMismatch, kind)
	}
	if length < 1 {
		return nil, fmt.Errorf("%w: datatype length %d (want >= 1)", ErrIndexOutOfRange, length)
	}
	return &Datatype{kind: kind, length: length}, nil
}

// Kind returns the named type.
func (d *Datatype) Kind() DatatypeKind { return d.kind }

// Length returns the declared length, or 0 when unspecified.
func (d *Datatype) Length() int { return d.length }

func (d *Datatype) TypeClass() TypeClass { return d.kind.class() }
func (d *Datatype) Name() string         { return d.kind.String() }
func (d *Datatype) Category() Category   { return CategoryOperand }
func (d *Datatype) operandNode()         {}

func (d *Datatype) Copy() (Node, error) {
	clone := &Datatype{kind: d.kind, length: d.length}
	clone.SetPosition(d.Position().Copy())
	return clone, nil
}

func (d *Datatype) ToADQL() string {
	if d.length > 0 {
		return fmt.Sprintf("%s(%d)", d.kind, d.length)
	}
	return d.kind.String()
}

func (d *Datatype) Iterator() *Iterator { return newIterator(d) }
func (d *Datatype) childSlots() []slot  { return nil }
