package cds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSQLOptions(t *testing.T) {
	const entity = "entity T {\n\tID: Integer;\n}\n"

	t.Run("no extended syntax passes through", func(t *testing.T) {
		def := `CREATE COLUMN TABLE "S"."T" (ID INTEGER)`
		assert.Equal(t, entity, ParseSQLOptions(def, entity))
	})

	t.Run("unload priority is carried over", func(t *testing.T) {
		def := `CREATE COLUMN TABLE "S"."T" (ID INTEGER) UNLOAD PRIORITY 5`
		got := ParseSQLOptions(def, entity)
		assert.Contains(t, got, "@sql.append: ```sql\n")
		assert.Contains(t, got, "UNLOAD PRIORITY 5\n")
		assert.Contains(t, got, "```\n")
	})

	t.Run("merge and group clauses", func(t *testing.T) {
		def := `CREATE COLUMN TABLE "S"."T" (ID INTEGER) NO AUTO MERGE GROUP TYPE sales GROUP SUBTYPE emea GROUP NAME q1`
		got := ParseSQLOptions(def, entity)
		assert.Contains(t, got, "NO AUTO MERGE\n")
		assert.Contains(t, got, "GROUP TYPE sales\n")
		assert.Contains(t, got, "GROUP SUBTYPE emea\n")
		assert.Contains(t, got, "GROUP NAME q1\n")
	})

	t.Run("partition rides along with other clauses", func(t *testing.T) {
		def := `CREATE COLUMN TABLE "S"."T" (ID INTEGER) UNLOAD PRIORITY 5 PARTITION BY HASH (ID) PARTITIONS 4;`
		got := ParseSQLOptions(def, entity)
		assert.Contains(t, got, "UNLOAD PRIORITY 5\n")
		assert.Contains(t, got, "PARTITION BY HASH (ID) PARTITIONS 4\n")
	})

	t.Run("partition alone emits nothing", func(t *testing.T) {
		// Long-standing gating quirk: a lone PARTITION BY never triggers
		// the passthrough block.
		def := `CREATE COLUMN TABLE "S"."T" (ID INTEGER) PARTITION BY HASH (ID) PARTITIONS 4`
		assert.Equal(t, entity, ParseSQLOptions(def, entity))
	})

	t.Run("clauses match case-insensitively", func(t *testing.T) {
		def := `create column table t (id integer) unload priority 7`
		got := ParseSQLOptions(def, entity)
		assert.Contains(t, got, "unload priority 7\n")
	})
}

func TestFindPartitionClause(t *testing.T) {
	assert.Equal(t, "", findPartitionClause("CREATE TABLE T (ID INTEGER)"))

	got := findPartitionClause("CREATE TABLE T (ID INTEGER) PARTITION BY RANGE (ID) (PARTITION 1 <= VALUES < 10); COMMENT ON ...")
	assert.Equal(t, "PARTITION BY RANGE (ID) (PARTITION 1 <= VALUES < 10)", got)
}
