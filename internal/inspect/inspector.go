// Package inspect reads object descriptors, columns, constraints and
// parameters from the HANA system catalog.
//
// Queries branch on the server's major version: HANA 1 catalogs lack columns
// (CREATE_TIME, view parameter flags) that 2.x exposes. Instead of keeping
// two full copies of every query text, a small per-version capability table
// decides which optional columns join the SELECT list.
package inspect

import (
	"context"

	"github.com/hanatools/hanacli/internal/database"
	"github.com/hanatools/hanacli/internal/errs"
	"github.com/hanatools/hanacli/internal/logger"
)

// VersionInfo holds the probed server version. Once populated it is
// immutable for the lifetime of the Inspector; RefreshVersion is the
// escape hatch for tests and long-lived sessions.
type VersionInfo struct {
	// Version is the raw version string, e.g. "2.00.076.00.1705400033".
	Version string

	// Major is the numeric value of the version string's first character.
	Major int
}

// capabilities lists the optional catalog columns available on a major
// version. Consulted once per query build.
type capabilities struct {
	// CreateTime: SYS.TABLES/VIEWS/PROCEDURES/FUNCTIONS expose CREATE_TIME.
	CreateTime bool

	// ViewParameters: SYS.VIEWS exposes HAS_PARAMETERS and the
	// BIMC reporting catalog exists for calculation-view detection.
	ViewParameters bool
}

func capabilitiesFor(major int) capabilities {
	return capabilities{
		CreateTime:     major >= 2,
		ViewParameters: major >= 2,
	}
}

// Inspector is a catalog reader bound to one connection. The version cache
// and everything derived from it is scoped to the Inspector, not to the
// process — independent sessions never share state.
type Inspector struct {
	q       database.Querier
	log     *logger.Logger
	version *VersionInfo
}

// New creates an Inspector over q. The version probe is deferred to the
// first catalog call.
func New(q database.Querier, log *logger.Logger) *Inspector {
	if log == nil {
		log = logger.New(nil)
	}
	return &Inspector{q: q, log: log}
}

// Version returns the cached server version, probing it on first use.
func (i *Inspector) Version(ctx context.Context) (*VersionInfo, error) {
	if i.version != nil {
		return i.version, nil
	}
	return i.RefreshVersion(ctx)
}

// RefreshVersion discards the cached version and probes the server again.
func (i *Inspector) RefreshVersion(ctx context.Context) (*VersionInfo, error) {
	row := i.q.QueryRow(ctx, `SELECT VERSION FROM SYS.M_DATABASE`)

	var version string
	if err := row.Scan(&version); err != nil {
		return nil, errs.Wrap(errs.ErrKindNotFound, "database version not found", err)
	}
	if version == "" {
		return nil, errs.New(errs.ErrKindNotFound, "database version not found")
	}

	info := &VersionInfo{Version: version, Major: int(version[0] - '0')}
	i.version = info
	i.log.Debugf("catalog version %s (major %d)", info.Version, info.Major)
	return info, nil
}

// caps resolves the capability set for the connected server.
func (i *Inspector) caps(ctx context.Context) (capabilities, error) {
	v, err := i.Version(ctx)
	if err != nil {
		return capabilities{}, err
	}
	return capabilitiesFor(v.Major), nil
}
