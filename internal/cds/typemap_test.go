package cds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func int64p(v int64) *int64 { return &v }

func TestMapType_DefaultVocabulary(t *testing.T) {
	tests := []struct {
		name       string
		nativeType string
		length     int64
		scale      *int64
		want       string
	}{
		{"tinyint widens", "TINYINT", 0, nil, "Integer"},
		{"smallint widens", "SMALLINT", 0, nil, "Integer"},
		{"integer", "INTEGER", 0, nil, "Integer"},
		{"bigint", "BIGINT", 0, nil, "Integer64"},
		{"decimal with scale", "DECIMAL", 10, int64p(2), "Decimal(10, 2)"},
		{"decimal precision only", "DECIMAL", 10, nil, "Decimal(10)"},
		{"decimal bare", "DECIMAL", 0, nil, "Decimal"},
		{"smalldecimal", "SMALLDECIMAL", 0, nil, "Decimal"},
		{"real", "REAL", 0, nil, "Double"},
		{"double", "DOUBLE", 0, nil, "Double"},
		{"float", "FLOAT", 0, nil, "Double"},
		{"char", "CHAR", 8, nil, "String(8)"},
		{"nchar", "NCHAR", 8, nil, "String(8)"},
		{"varchar", "VARCHAR", 50, nil, "String(50)"},
		{"nvarchar", "NVARCHAR", 100, nil, "String(100)"},
		{"nvarchar unbounded", "NVARCHAR", 0, nil, "String"},
		{"alphanum", "ALPHANUM", 12, nil, "String(12)"},
		{"shorttext", "SHORTTEXT", 40, nil, "String(40)"},
		{"clob", "CLOB", 0, nil, "LargeString"},
		{"nclob", "NCLOB", 0, nil, "LargeString"},
		{"text", "TEXT", 0, nil, "LargeString"},
		{"bintext", "BINTEXT", 0, nil, "LargeString"},
		{"blob", "BLOB", 0, nil, "LargeBinary"},
		{"binary", "BINARY", 16, nil, "Binary(16)"},
		{"varbinary", "VARBINARY", 32, nil, "Binary(32)"},
		{"date", "DATE", 0, nil, "Date"},
		{"time", "TIME", 0, nil, "Time"},
		{"timestamp", "TIMESTAMP", 0, nil, "Timestamp"},
		{"seconddate", "SECONDDATE", 0, nil, "DateTime"},
		{"boolean", "BOOLEAN", 0, nil, "Boolean"},
		{"st_point", "ST_POINT", 0, nil, "hana.ST_POINT"},
		{"st_geometry", "ST_GEOMETRY", 0, nil, "hana.ST_GEOMETRY"},
		{"real_vector", "REAL_VECTOR", 768, nil, "Vector(768)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapType(tt.nativeType, tt.length, tt.scale, false, "")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapType_HanaVocabulary(t *testing.T) {
	tests := []struct {
		name       string
		nativeType string
		length     int64
		want       string
	}{
		{"tinyint", "TINYINT", 0, "hana.TINYINT"},
		{"smallint", "SMALLINT", 0, "hana.SMALLINT"},
		{"smalldecimal", "SMALLDECIMAL", 0, "hana.SMALLDECIMAL"},
		{"real", "REAL", 0, "hana.REAL"},
		{"char", "CHAR", 8, "hana.CHAR(8)"},
		{"nchar", "NCHAR", 8, "hana.NCHAR(8)"},
		{"varchar", "VARCHAR", 50, "hana.VARCHAR(50)"},
		{"clob", "CLOB", 0, "hana.CLOB"},
		{"binary", "BINARY", 16, "hana.BINARY(16)"},

		// Shared mappings are identical in both vocabularies.
		{"integer", "INTEGER", 0, "Integer"},
		{"nvarchar", "NVARCHAR", 100, "String(100)"},
		{"timestamp", "TIMESTAMP", 0, "Timestamp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapType(tt.nativeType, tt.length, nil, true, "")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapType_GeometryOverride(t *testing.T) {
	// A resolved SRS wins over both vocabularies.
	assert.Equal(t, "hana.ST_POINT(4326)", MapType("ST_POINT", 0, nil, false, "4326"))
	assert.Equal(t, "hana.ST_GEOMETRY(0)", MapType("ST_GEOMETRY", 0, nil, true, "0"))
}

func TestMapType_Unsupported(t *testing.T) {
	got := MapType("ARRAY", 0, nil, false, "")
	assert.Equal(t, "**UNSUPPORTED TYPE - ARRAY", got)

	// The sentinel shape is the same in both vocabularies.
	assert.Equal(t, got, MapType("ARRAY", 0, nil, true, ""))
}
