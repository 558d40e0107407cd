package adql

import "fmt"

// Position is the source span of a node in the original query text.
//
// Positions exist purely for diagnostics. They are only ever produced by an
// external parser; this package never derives one itself, it only discards
// them: any successful structural mutation of a node clears that node's
// cached position, because the recorded span no longer matches the mutated
// children.
type Position struct {
	BeginLine   int
	BeginColumn int
	EndLine     int
	EndColumn   int
}

// NewPosition builds a span from begin line/column to end line/column.
func NewPosition(beginLine, beginColumn, endLine, endColumn int) *Position {
	return &Position{
		BeginLine:   beginLine,
		BeginColumn: beginColumn,
		EndLine:     endLine,
		EndColumn:   endColumn,
	}
}

// Copy returns an independent copy of the position. Nil-safe.
func (p *Position) Copy() *Position {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func (p *Position) String() string {
	if p == nil {
		return "[l.? c.?]"
	}
	return fmt.Sprintf("[l.%d c.%d - l.%d c.%d]", p.BeginLine, p.BeginColumn, p.EndLine, p.EndColumn)
}
