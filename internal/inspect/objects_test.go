package inspect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanatools/hanacli/internal/errs"
)

func TestGetTable_Hana2(t *testing.T) {
	q := &fakeQuerier{rules: []rule{
		versionRule("2.00.076"),
		{match: "FROM SYS.TABLES", rows: [][]any{
			{"SHOP", "ORDERS", int64(1001), "TRUE", "TRUE", "order header", "2024-01-15 10:00:00"},
		}},
	}}
	insp := New(q, nil)

	objs, err := insp.GetTable(context.Background(), "SHOP", "ORDERS")
	require.NoError(t, err)
	require.Len(t, objs, 1)

	o := objs[0]
	assert.Equal(t, "SHOP", o.SchemaName)
	assert.Equal(t, "ORDERS", o.ObjectName)
	assert.Equal(t, int64(1001), o.OID)
	assert.True(t, o.IsColumnTable)
	assert.True(t, o.HasPrimaryKey)
	assert.Equal(t, "order header", o.Comments)
	assert.Equal(t, "2024-01-15 10:00:00", o.CreateTime)

	// A 2.x catalog gets the optional column in the SELECT list.
	assert.Contains(t, q.lastQuery("SYS.TABLES"), "TO_NVARCHAR(CREATE_TIME)")
}

func TestGetTable_Hana1OmitsCreateTime(t *testing.T) {
	q := &fakeQuerier{rules: []rule{
		versionRule("1.00.122"),
		{match: "FROM SYS.TABLES", rows: [][]any{
			{"SHOP", "ORDERS", int64(1001), "FALSE", "FALSE", nil},
		}},
	}}
	insp := New(q, nil)

	objs, err := insp.GetTable(context.Background(), "SHOP", "ORDERS")
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Empty(t, objs[0].CreateTime)
	assert.Empty(t, objs[0].Comments)
	assert.False(t, objs[0].IsColumnTable)

	assert.NotContains(t, q.lastQuery("SYS.TABLES"), "CREATE_TIME")
}

func TestGetTable_NotFound(t *testing.T) {
	q := &fakeQuerier{rules: []rule{
		versionRule("2.00.076"),
		{match: "FROM SYS.TABLES"},
	}}
	insp := New(q, nil)

	_, err := insp.GetTable(context.Background(), "SHOP", "MISSING")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Contains(t, err.Error(), "table MISSING not found")
}

func TestGetView_Hana2ReadsParameterFlag(t *testing.T) {
	q := &fakeQuerier{rules: []rule{
		versionRule("2.00.076"),
		{match: "FROM SYS.VIEWS", rows: [][]any{
			{"_SYS_BIC", "pkg/CV_SALES", int64(2002), "TRUE", nil, "TRUE"},
		}},
	}}
	insp := New(q, nil)

	objs, err := insp.GetView(context.Background(), "_SYS_BIC", "pkg/CV_SALES")
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.True(t, objs[0].IsColumnView)
	assert.True(t, objs[0].HasParameters)

	assert.Contains(t, q.lastQuery("SYS.VIEWS"), "HAS_PARAMETERS")
}

func TestGetView_Hana1HasNoParameterFlag(t *testing.T) {
	q := &fakeQuerier{rules: []rule{
		versionRule("1.00.122"),
		{match: "FROM SYS.VIEWS", rows: [][]any{
			{"_SYS_BIC", "pkg/CV_SALES", int64(2002), "TRUE", nil},
		}},
	}}
	insp := New(q, nil)

	objs, err := insp.GetView(context.Background(), "_SYS_BIC", "pkg/CV_SALES")
	require.NoError(t, err)
	assert.False(t, objs[0].HasParameters)
	assert.NotContains(t, q.lastQuery("SYS.VIEWS"), "HAS_PARAMETERS")
}

func TestGetProcedureAndFunction(t *testing.T) {
	q := &fakeQuerier{rules: []rule{
		versionRule("2.00.076"),
		{match: "SYS.PROCEDURES", rows: [][]any{
			{"SHOP", "CALC_TOTALS", int64(3003), "TRUE", nil},
		}},
		{match: "SYS.FUNCTIONS", rows: [][]any{
			{"SHOP", "NET_PRICE", int64(4004), "FALSE", "2024-02-01"},
		}},
	}}
	insp := New(q, nil)

	procs, err := insp.GetProcedure(context.Background(), "SHOP", "CALC_TOTALS")
	require.NoError(t, err)
	require.Len(t, procs, 1)
	assert.True(t, procs[0].IsValid)

	funcs, err := insp.GetFunction(context.Background(), "SHOP", "NET_PRICE")
	require.NoError(t, err)
	require.Len(t, funcs, 1)
	assert.False(t, funcs[0].IsValid)
	assert.Equal(t, "2024-02-01", funcs[0].CreateTime)
}

func TestGetRoutine_NotFoundNamesKind(t *testing.T) {
	q := &fakeQuerier{rules: []rule{
		versionRule("2.00.076"),
		{match: "SYS.FUNCTIONS"},
	}}
	insp := New(q, nil)

	_, err := insp.GetFunction(context.Background(), "SHOP", "MISSING")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "function MISSING not found")
}

func TestSearchTables(t *testing.T) {
	q := &fakeQuerier{rules: []rule{
		{match: "FROM SYS.TABLES", rows: [][]any{
			{"SHOP", "ORDERS", int64(1), "TRUE", nil},
			{"SHOP", "ORDER_ITEMS", int64(2), "FALSE", "line items"},
		}},
	}}
	insp := New(q, nil)

	objs, err := insp.SearchTables(context.Background(), "SHOP", "ORDER%", 50)
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Equal(t, "ORDERS", objs[0].ObjectName)
	assert.True(t, objs[0].HasPrimaryKey)
	assert.Equal(t, "line items", objs[1].Comments)

	// Listing never consults the version probe.
	assert.Zero(t, q.countQueries("M_DATABASE"))
}

func TestSearchTables_EmptyResultIsNotAnError(t *testing.T) {
	q := &fakeQuerier{rules: []rule{{match: "FROM SYS.TABLES"}}}
	insp := New(q, nil)

	objs, err := insp.SearchTables(context.Background(), "SHOP", "NOPE%", 0)
	require.NoError(t, err)
	assert.Empty(t, objs)
}
