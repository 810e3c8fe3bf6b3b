package inspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanatools/hanacli/internal/database"
	"github.com/hanatools/hanacli/internal/errs"
)

// rule routes one fake result set to queries containing match.
type rule struct {
	match string
	cols  []string
	rows  [][]any
	err   error
}

// fakeQuerier answers catalog queries from a fixed rule table and records
// every query text it sees.
type fakeQuerier struct {
	rules   []rule
	queries []string
}

func versionRule(version string) rule {
	return rule{match: "M_DATABASE", rows: [][]any{{version}}}
}

func (f *fakeQuerier) Query(_ context.Context, query string, _ ...any) (database.Rows, error) {
	f.queries = append(f.queries, query)
	for _, r := range f.rules {
		if strings.Contains(query, r.match) {
			if r.err != nil {
				return nil, r.err
			}
			return &fakeRows{cols: r.cols, rows: r.rows}, nil
		}
	}
	return nil, fmt.Errorf("unexpected query: %s", query)
}

func (f *fakeQuerier) QueryRow(_ context.Context, query string, _ ...any) database.Row {
	f.queries = append(f.queries, query)
	for _, r := range f.rules {
		if strings.Contains(query, r.match) {
			if r.err != nil {
				return fakeRow{err: r.err}
			}
			if len(r.rows) == 0 {
				return fakeRow{err: sql.ErrNoRows}
			}
			return fakeRow{vals: r.rows[0]}
		}
	}
	return fakeRow{err: fmt.Errorf("unexpected query: %s", query)}
}

func (f *fakeQuerier) countQueries(substr string) int {
	n := 0
	for _, q := range f.queries {
		if strings.Contains(q, substr) {
			n++
		}
	}
	return n
}

func (f *fakeQuerier) lastQuery(substr string) string {
	for i := len(f.queries) - 1; i >= 0; i-- {
		if strings.Contains(f.queries[i], substr) {
			return f.queries[i]
		}
	}
	return ""
}

type fakeRows struct {
	cols []string
	rows [][]any
	idx  int
	err  error
}

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx <= len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error     { return scanInto(r.rows[r.idx-1], dest) }
func (r *fakeRows) Columns() ([]string, error) { return r.cols, nil }
func (r *fakeRows) Close()                     {}
func (r *fakeRows) Err() error                 { return r.err }

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	return scanInto(r.vals, dest)
}

func scanInto(vals []any, dest []any) error {
	if len(vals) != len(dest) {
		return fmt.Errorf("scan: have %d values, want %d", len(vals), len(dest))
	}
	for i, v := range vals {
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *int:
			*d = v.(int)
		case *int64:
			switch n := v.(type) {
			case int:
				*d = int64(n)
			case int64:
				*d = n
			default:
				return fmt.Errorf("scan: column %d: cannot assign %T to *int64", i, v)
			}
		case *sql.NullString:
			if v == nil {
				*d = sql.NullString{}
			} else {
				*d = sql.NullString{String: v.(string), Valid: true}
			}
		case *sql.NullInt64:
			if v == nil {
				*d = sql.NullInt64{}
			} else {
				switch n := v.(type) {
				case int:
					*d = sql.NullInt64{Int64: int64(n), Valid: true}
				case int64:
					*d = sql.NullInt64{Int64: n, Valid: true}
				}
			}
		case *any:
			*d = v
		default:
			return fmt.Errorf("scan: column %d: unsupported destination %T", i, dest[i])
		}
	}
	return nil
}

func TestRefreshVersion(t *testing.T) {
	q := &fakeQuerier{rules: []rule{versionRule("2.00.076.00.1705400033")}}
	insp := New(q, nil)

	v, err := insp.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2.00.076.00.1705400033", v.Version)
	assert.Equal(t, 2, v.Major)

	// Second call served from the cache.
	_, err = insp.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, q.countQueries("M_DATABASE"))

	// RefreshVersion probes again.
	_, err = insp.RefreshVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, q.countQueries("M_DATABASE"))
}

func TestRefreshVersion_NoRow(t *testing.T) {
	q := &fakeQuerier{rules: []rule{{match: "M_DATABASE"}}}
	insp := New(q, nil)

	_, err := insp.Version(context.Background())
	assert.True(t, errs.IsNotFound(err))
}

func TestCapabilitiesFor(t *testing.T) {
	assert.Equal(t, capabilities{}, capabilitiesFor(1))
	assert.Equal(t, capabilities{CreateTime: true, ViewParameters: true}, capabilitiesFor(2))
	assert.Equal(t, capabilities{CreateTime: true, ViewParameters: true}, capabilitiesFor(4))
}
