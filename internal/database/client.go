// Package database selects and drives the per-backend clients.
//
// One contract (Client) with four implementations: direct HANA via go-hdb,
// PostgreSQL via pgx, SQLite via modernc.org/sqlite and MySQL via
// go-sql-driver. The backend is picked once, at construction, from the
// resolved profile kind — callers never import a driver package directly.
package database

import (
	"context"

	"github.com/hanatools/hanacli/internal/config"
	"github.com/hanatools/hanacli/internal/errs"
)

// Kind identifies a backend implementation.
type Kind string

const (
	KindHANA     Kind = "hana"
	KindPostgres Kind = "postgres"
	KindSQLite   Kind = "sqlite"
	KindMySQL    Kind = "mysql"
)

// CurrentSchemaSentinel requests the connection's own default schema.
const CurrentSchemaSentinel = "**CURRENT_SCHEMA**"

// TableRow is the common row shape returned by ListTables. Not every backend
// populates every field — SQLite has no OID or comment equivalent.
type TableRow struct {
	SchemaName string
	TableName  string
	TableOID   int64
	Comments   string
}

// Prompts carries the fully-resolved request parameters from the CLI or
// server layer. The clients do no validation beyond what is described here.
type Prompts struct {
	Profile string
	Schema  string
	Table   string
	Limit   int
}

// Client is the per-backend contract. Implementations differ only in which
// system catalog they query, how schema scoping is expressed and how the
// result rows are aliased back to TableRow.
type Client interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
	Ping(ctx context.Context) error

	// Kind returns the backend tag resolved at construction.
	Kind() Kind

	// Querier exposes parameterized query execution for the catalog
	// inspector. Valid only after Connect.
	Querier() Querier

	// ListTables returns tables matching the prompt's schema and table
	// patterns, bounded by the prompt's limit.
	ListTables(ctx context.Context) ([]TableRow, error)

	// SchemaCalculation resolves the effective schema for this request.
	SchemaCalculation() string

	// AdjustWildcard translates the single full-wildcard pattern "*" to the
	// SQL LIKE wildcard "%". Anything else passes through unchanged.
	AdjustWildcard(pattern string) string
}

// baseClient carries the behavior shared by every backend.
type baseClient struct {
	prompts Prompts
	profile *config.Profile
}

// SchemaCalculation implements the shared schema resolution rule: no schema
// or the CURRENT_SCHEMA sentinel falls back to the credential-embedded
// schema, then to "public"; the wildcard "*" becomes the LIKE wildcard "%";
// any other value is used verbatim.
func (b *baseClient) SchemaCalculation() string {
	schema := b.prompts.Schema
	if schema == "" || schema == CurrentSchemaSentinel {
		if b.profile != nil && b.profile.Schema != "" {
			return b.profile.Schema
		}
		return "public"
	}
	if schema == "*" {
		return "%"
	}
	return schema
}

// AdjustWildcard special-cases only the single full-wildcard pattern.
// It is not a general glob translator.
func (b *baseClient) AdjustWildcard(pattern string) string {
	if pattern == "*" {
		return "%"
	}
	return pattern
}

// limit returns the row bound for listing queries, defaulting to 200.
func (b *baseClient) limit() int {
	if b.prompts.Limit > 0 {
		return b.prompts.Limit
	}
	return 200
}

// NewClient resolves the profile named in prompts and constructs the matching
// backend client. An unset profile defaults to "hybrid", which resolves to
// the direct-HANA backend. The connection is not opened — call Connect.
func NewClient(prompts Prompts, cfg *config.File) (Client, error) {
	if prompts.Profile == "" {
		prompts.Profile = config.DefaultProfile
	}

	profile, err := cfg.Resolve(prompts.Profile)
	if err != nil {
		return nil, err
	}

	base := baseClient{prompts: prompts, profile: profile}

	switch Kind(profile.Kind) {
	case KindHANA:
		return &hanaClient{baseClient: base}, nil
	case KindPostgres:
		return &postgresClient{baseClient: base}, nil
	case KindSQLite:
		return &sqliteClient{baseClient: base}, nil
	case KindMySQL:
		return &mysqlClient{baseClient: base}, nil
	default:
		return nil, errs.Newf(errs.ErrKindUnsupportedConfig,
			"unsupported database client type %q", profile.Kind)
	}
}
