package inspect

import "context"

// IsCalculationView reports whether a view is a calculation view.
//
// Detection needs the _SYS_BI reporting catalog, which only exists on HANA
// 2+: older servers always report false. The lookup is two-phase — the
// qualified name ("SCHEMA/NAME" or "pkg::NAME") is tried first, then the
// plain view name. Lookup failures also report false; this predicate never
// surfaces an error.
func (i *Inspector) IsCalculationView(ctx context.Context, schema, name string) bool {
	v, err := i.Version(ctx)
	if err != nil || v.Major < 2 {
		return false
	}

	qualified := schema + "/" + name

	count, err := i.countCubes(ctx,
		`SELECT COUNT(*) FROM "_SYS_BI"."BIMC_ALL_CUBES" WHERE QUALIFIED_NAME = ?`, qualified)
	if err != nil {
		i.log.Debugf("calculation view lookup failed: %v", err)
		return false
	}
	if count > 0 {
		return true
	}

	count, err = i.countCubes(ctx,
		`SELECT COUNT(*) FROM "_SYS_BI"."BIMC_ALL_CUBES" WHERE CUBE_NAME = ?`, name)
	if err != nil {
		i.log.Debugf("calculation view lookup failed: %v", err)
		return false
	}
	return count > 0
}

func (i *Inspector) countCubes(ctx context.Context, query, arg string) (int64, error) {
	var count int64
	if err := i.q.QueryRow(ctx, query, arg).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
