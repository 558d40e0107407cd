package translate

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/skyquery/adql"
)

// SQLite builds the SQLite dialect.
//
// SQLite has no ILIKE (LIKE is already case-insensitive for ASCII, but the
// lowering keeps the semantics explicit), no TRUNCATE or trigonometric
// COT, and only its own affinity names for datatypes.
func SQLite() *Dialect {
	return &Dialect{
		Name: "SQLite",
		FunctionNames: map[adql.MathFunctionKind]string{
			adql.MathCeiling:  "ceiling",
			adql.MathTruncate: "trunc",
			adql.MathLog:      "ln",
			adql.MathLog10:    "log10",
			adql.MathRand:     "random",
		},
		TypeNames: map[adql.DatatypeKind]string{
			adql.DatatypeSmallint:  "INTEGER",
			adql.DatatypeInteger:   "INTEGER",
			adql.DatatypeBigint:    "INTEGER",
			adql.DatatypeReal:      "REAL",
			adql.DatatypeDouble:    "REAL",
			adql.DatatypeChar:      "TEXT",
			adql.DatatypeVarchar:   "TEXT",
			adql.DatatypeTimestamp: "TEXT",
		},
	}
}

// CheckSyntax validates a translated statement against an in-memory SQLite
// engine: the setup statements (usually CREATE TABLE for every referenced
// table) run first, then the query is prepared without being executed. A
// query that references missing tables or columns, or that SQLite cannot
// parse, fails here instead of in production.
func CheckSyntax(ctx context.Context, setup []string, query string) error {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return fmt.Errorf("open in-memory database: %w", err)
	}
	defer db.Close()

	for _, stmt := range setup {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("setup statement %q: %w", stmt, err)
		}
	}

	prepared, err := db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare %q: %w", query, err)
	}
	return prepared.Close()
}
