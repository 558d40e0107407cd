// Package translate renders ADQL trees as concrete SQL dialects.
//
// A Dialect walks a tree by node kind and emits dialect text, renaming
// functions, mapping datatypes and rewriting constructs the target engine
// lacks (ADQL's TOP becomes LIMIT, ILIKE is lowered to LOWER(...) LIKE
// where it is not native). Translation is all-or-nothing: the first
// untranslatable node aborts the pass with ErrUnsupported and no partial
// text is returned.
//
// User-defined function calls are translated by hand-off: the dialect asks
// the node itself to compose its call shell, passing itself back as the
// translator for the parameters.
package translate
