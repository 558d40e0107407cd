package adql

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeIdent returns the NFC form of an identifier. All identifier
// comparisons normalize first, so visually identical labels with different
// code point sequences compare equal.
func normalizeIdent(s string) string {
	return norm.NFC.String(s)
}

// identEqual compares two identifiers the way ADQL does: if either side was
// textually delimited (double-quoted in the source), the comparison is
// case-sensitive; otherwise it is case-insensitive.
func identEqual(a string, aDelimited bool, b string, bDelimited bool) bool {
	a, b = normalizeIdent(a), normalizeIdent(b)
	if aDelimited || bDelimited {
		return a == b
	}
	return strings.EqualFold(a, b)
}

// quoteDelimited renders a delimited identifier, doubling embedded quotes.
func quoteDelimited(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// renderIdent renders an identifier in canonical ADQL, quoting it only when
// it was delimited in the source.
func renderIdent(s string, delimited bool) string {
	if delimited {
		return quoteDelimited(s)
	}
	return s
}

// RenderIdent is renderIdent for dialect translators: delimited identifiers
// keep their double-quoting in dialect output too.
func RenderIdent(s string, delimited bool) string {
	return renderIdent(s, delimited)
}
