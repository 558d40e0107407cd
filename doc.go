// Package adql provides the abstract syntax tree for the Astronomical Data
// Query Language (ADQL), the SQL-like query language used by astronomical
// data services.
//
// This package contains the tree itself: operands (columns, literals,
// arithmetic, functions), predicates (comparisons, BETWEEN, IN, IS NULL,
// EXISTS, NOT, grouped constraints), clause containers, full SELECT queries
// and WITH items. It does not contain a parser; trees are built
// programmatically through constructors, or by an external parser that hands
// this package fully-formed nodes with optional source positions.
//
// Key design constraints:
//   - Node is a sealed interface - only types in this package implement it.
//   - Every composite node exposes its children through one generic
//     traversal/mutation protocol (Iterator) with a documented child order.
//   - Type compatibility (numeric/string/geometry) is enforced at
//     construction and on every mutation; no partially-built invalid node is
//     ever observable.
//   - A parent exclusively owns each attached child. Attaching a node that
//     already has a parent fails; a displaced or removed child is released
//     back to the caller.
//   - Any successful structural mutation clears the mutated node's cached
//     source position (the span is stale once children change).
//   - Copy is always a deep copy; no mutable state is shared between a node
//     and its clone.
//
// Dialect translation is performed by an external Translator (see the
// translate package for concrete dialects); ToADQL always produces canonical
// ADQL text that a conforming parser can re-parse into a structurally
// identical node.
package adql
