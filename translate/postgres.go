package translate

import "github.com/skyquery/adql"

// Postgres builds the PostgreSQL dialect.
//
// PostgreSQL has native ILIKE, spells a handful of math functions
// differently (TRUNCATE is trunc, LOG is the natural log ln, RAND is
// random) and, without an astronomy extension, offers no geometric
// datatypes.
func Postgres() *Dialect {
	return &Dialect{
		Name:        "PostgreSQL",
		NativeILike: true,
		FunctionNames: map[adql.MathFunctionKind]string{
			adql.MathTruncate: "trunc",
			adql.MathLog:      "ln",
			adql.MathLog10:    "log",
			adql.MathRand:     "random",
			adql.MathCeiling:  "ceil",
		},
		TypeNames: map[adql.DatatypeKind]string{
			adql.DatatypeSmallint:  "SMALLINT",
			adql.DatatypeInteger:   "INTEGER",
			adql.DatatypeBigint:    "BIGINT",
			adql.DatatypeReal:      "REAL",
			adql.DatatypeDouble:    "DOUBLE PRECISION",
			adql.DatatypeChar:      "CHAR",
			adql.DatatypeVarchar:   "VARCHAR",
			adql.DatatypeTimestamp: "TIMESTAMP",
		},
	}
}
