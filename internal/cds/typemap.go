// Package cds converts HANA catalog metadata into CDS entity definitions.
//
// The package splits into a pure type mapper (MapType), a stateful
// Formatter carrying per-session options, rename cross-reference and
// synonym registry, and the extended-syntax splitter for vendor DDL the
// CDS language cannot express.
package cds

import (
	"fmt"
	"strconv"
)

// MapType maps a native catalog type to its CDS type text.
//
// A non-empty srsID marks a geometry column: those always render as the
// vendor type with the spatial reference system inline, regardless of the
// vocabulary flag. Otherwise hanaTypes selects the alternate vocabulary,
// which substitutes hana.* wrapped names for the types CDS core cannot
// represent losslessly (small integers, small decimals, fixed-length
// character and binary types); the remaining mappings are shared.
//
// Unknown types yield a sentinel instead of an error so that one unmapped
// column cannot abort the conversion of its whole object.
func MapType(nativeType string, length int64, scale *int64, hanaTypes bool, srsID string) string {
	if srsID != "" {
		return "hana." + nativeType + "(" + srsID + ")"
	}

	switch nativeType {
	case "TINYINT":
		if hanaTypes {
			return "hana.TINYINT"
		}
		return "Integer"
	case "SMALLINT":
		if hanaTypes {
			return "hana.SMALLINT"
		}
		return "Integer"
	case "INTEGER":
		return "Integer"
	case "BIGINT":
		return "Integer64"
	case "DECIMAL":
		if scale != nil {
			return fmt.Sprintf("Decimal(%d, %d)", length, *scale)
		}
		if length > 0 {
			return fmt.Sprintf("Decimal(%d)", length)
		}
		return "Decimal"
	case "SMALLDECIMAL":
		if hanaTypes {
			return "hana.SMALLDECIMAL"
		}
		return "Decimal"
	case "REAL":
		if hanaTypes {
			return "hana.REAL"
		}
		return "Double"
	case "DOUBLE", "FLOAT":
		return "Double"
	case "CHAR":
		if hanaTypes {
			return withLength("hana.CHAR", length)
		}
		return withLength("String", length)
	case "NCHAR":
		if hanaTypes {
			return withLength("hana.NCHAR", length)
		}
		return withLength("String", length)
	case "VARCHAR":
		if hanaTypes {
			return withLength("hana.VARCHAR", length)
		}
		return withLength("String", length)
	case "NVARCHAR", "ALPHANUM", "SHORTTEXT":
		return withLength("String", length)
	case "CLOB":
		if hanaTypes {
			return "hana.CLOB"
		}
		return "LargeString"
	case "NCLOB", "TEXT", "BINTEXT":
		return "LargeString"
	case "BLOB":
		return "LargeBinary"
	case "BINARY":
		if hanaTypes {
			return withLength("hana.BINARY", length)
		}
		return withLength("Binary", length)
	case "VARBINARY":
		return withLength("Binary", length)
	case "DATE":
		return "Date"
	case "TIME":
		return "Time"
	case "TIMESTAMP":
		return "Timestamp"
	case "SECONDDATE":
		return "DateTime"
	case "BOOLEAN":
		return "Boolean"
	case "ST_POINT":
		return "hana.ST_POINT"
	case "ST_GEOMETRY":
		return "hana.ST_GEOMETRY"
	case "REAL_VECTOR":
		return withLength("Vector", length)
	default:
		return "**UNSUPPORTED TYPE - " + nativeType
	}
}

func withLength(base string, length int64) string {
	if length > 0 {
		return base + "(" + strconv.FormatInt(length, 10) + ")"
	}
	return base
}
