package cds

import (
	"context"
	"sort"
	"strings"

	"github.com/hanatools/hanacli/internal/inspect"
)

// Options controls how entities are rendered. Callers configure a Formatter
// once per conversion batch.
type Options struct {
	// UseHanaTypes selects the hana.* type vocabulary over CDS core types.
	UseHanaTypes bool

	// NoColons replaces "::" namespace separators with underscores even
	// outside the preview context.
	NoColons bool

	// KeepPath preserves dots in object names instead of flattening them
	// to underscores.
	KeepPath bool

	// UseExists annotates entities with @cds.persistence.exists.
	UseExists bool

	// UseQuoted wraps emitted identifiers in ![...] delimiters.
	UseQuoted bool
}

// CallContext tags who is asking for the rendering. The preview renderer
// needs two deviations: colon flattening and TIMESTAMP parameters demoted
// to String (its expression parser chokes on timestamp literals).
type CallContext string

const (
	// ContextNone is the plain conversion context.
	ContextNone CallContext = ""

	// ContextPreview is the data-preview renderer.
	ContextPreview CallContext = "preview"
)

// Rename records one column rename performed during formatting. Query
// rewriting consumers translate generated column references back to the
// native names through this list.
type Rename struct {
	Before   string
	After    string
	DataType string
}

// SynonymTarget is the schema-qualified source object behind an emitted
// entity name.
type SynonymTarget struct {
	Object string `json:"object"`
	Schema string `json:"schema"`
}

// Synonym maps an emitted entity name back to its source object.
type Synonym struct {
	Target SynonymTarget `json:"target"`
}

// Catalog is the side-lookup surface the formatter needs from the catalog
// reader: calculation-view detection and geometry SRS resolution.
// *inspect.Inspector satisfies it.
type Catalog interface {
	IsCalculationView(ctx context.Context, schema, name string) bool
	SRSID(ctx context.Context, schema, object, column string) (string, error)
}

// Formatter renders catalog objects as CDS entity text. All mutable
// conversion state — options, rename cross-reference, synonym registry —
// lives on the Formatter, so independent batches cannot bleed into each
// other. Not safe for concurrent use by multiple goroutines.
type Formatter struct {
	Opts Options

	renames  []Rename
	synonyms map[string]Synonym
}

// NewFormatter creates a Formatter with empty session state.
func NewFormatter(opts Options) *Formatter {
	return &Formatter{
		Opts:     opts,
		synonyms: make(map[string]Synonym),
	}
}

// Renames returns the accumulated rename cross-reference, in formatting
// order. Entries are only ever appended, never removed.
func (f *Formatter) Renames() []Rename {
	return f.renames
}

// Synonyms materializes the synonym registry. Collisions during formatting
// overwrite — last write wins.
func (f *Formatter) Synonyms() map[string]Synonym {
	out := make(map[string]Synonym, len(f.synonyms))
	for k, v := range f.synonyms {
		out[k] = v
	}
	return out
}

// LookupRename scans the cross-reference for an emitted column name.
// Linear scan: the list holds tens to low hundreds of entries.
func (f *Formatter) LookupRename(after string) (Rename, bool) {
	for _, r := range f.renames {
		if r.After == after {
			return r, true
		}
	}
	return Rename{}, false
}

// sanitizeName flattens dots in a column name to underscores.
func sanitizeName(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}

// sanitizeObjectName applies the two-step object name transform: the colon
// rule first (preview and NoColons flatten "::" to "_", everything else
// turns it into a dot), then the dot rule (flatten unless KeepPath).
// The ordering is load-bearing — a "::" rewritten to "." must still be
// subject to the dot rule.
func (f *Formatter) sanitizeObjectName(name string, callCtx CallContext) string {
	if f.Opts.NoColons || callCtx == ContextPreview {
		name = strings.ReplaceAll(name, "::", "_")
	} else {
		name = strings.ReplaceAll(name, "::", ".")
	}
	if !f.Opts.KeepPath {
		name = strings.ReplaceAll(name, ".", "_")
	}
	return name
}

// ident renders an identifier, quoting it when the options ask for it.
func (f *Formatter) ident(name string) string {
	if f.Opts.UseQuoted {
		return "![" + name + "]"
	}
	return name
}

// FormatEntity renders one catalog object as a CDS entity definition.
//
// The object descriptor, its fields and (for tables) its primary-key
// constraint rows come from the catalog reader. schema overrides the
// descriptor's schema when non-empty. params, when present, renders a
// parameterized entity (calculation-view input parameters).
//
// Side effects on the Formatter: one synonym registration for the entity
// and one rename cross-reference entry per column whose name needed
// sanitizing. Caller-owned slices are never modified.
func (f *Formatter) FormatEntity(
	ctx context.Context,
	cat Catalog,
	obj inspect.Object,
	fields []inspect.Field,
	constraints []inspect.Constraint,
	kind inspect.ObjectKind,
	schema string,
	callCtx CallContext,
	params []inspect.Parameter,
) (string, error) {
	if schema == "" {
		schema = obj.SchemaName
	}
	original := obj.ObjectName
	name := f.sanitizeObjectName(original, callCtx)

	var b strings.Builder

	if f.Opts.UseExists && (kind == inspect.KindTable || kind == inspect.KindView) {
		b.WriteString("@cds.persistence.exists\n")
		if kind == inspect.KindView && cat.IsCalculationView(ctx, schema, original) {
			b.WriteString("@cds.persistence.calcview\n")
		}
	}

	b.WriteString("entity ")
	b.WriteString(f.ident(name))

	if len(params) > 0 {
		b.WriteString(" (")
		for idx, p := range params {
			if idx > 0 {
				b.WriteString(", ")
			}
			typ, err := f.resolveType(ctx, cat, schema, original, p.Name, p.DataType, p.Length, p.Scale, callCtx)
			if err != nil {
				return "", err
			}
			b.WriteString(p.Name)
			b.WriteString(": ")
			b.WriteString(typ)
		}
		b.WriteString(")")
	}
	b.WriteString(" {\n")

	f.synonyms[name] = Synonym{Target: SynonymTarget{Object: original, Schema: schema}}

	// Key membership joins on sanitized names so that a renamed column
	// still matches its constraint row.
	keyColumns := make(map[string]bool, len(constraints))
	for _, c := range constraints {
		keyColumns[sanitizeName(c.ColumnName)] = true
	}

	sorted := make([]inspect.Field, len(fields))
	copy(sorted, fields)
	sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].Position < sorted[b].Position })

	for _, fld := range sorted {
		col := sanitizeName(fld.ColumnName)
		if col != fld.ColumnName {
			f.renames = append(f.renames, Rename{
				Before:   fld.ColumnName,
				After:    col,
				DataType: fld.DataType,
			})
		}

		isKey := fld.Key
		if kind == inspect.KindTable {
			isKey = keyColumns[col]
		}

		typ, err := f.resolveType(ctx, cat, schema, original, fld.ColumnName, fld.DataType, fld.Length, fld.Scale, callCtx)
		if err != nil {
			return "", err
		}

		b.WriteString("\t")
		if isKey {
			b.WriteString("key ")
		}
		b.WriteString(f.ident(col))
		b.WriteString(": ")
		b.WriteString(typ)

		if fld.Default != nil {
			b.WriteString(" ")
			b.WriteString(defaultClause(fld.DataType, *fld.Default))
		}

		// Keys are implicitly non-null in CDS; annotating both would be
		// a compile error downstream.
		if !fld.Nullable && !isKey {
			b.WriteString(" not null")
		}

		title := col
		if fld.Comment != nil && *fld.Comment != "" {
			title = *fld.Comment
		}
		b.WriteString(" @title: '")
		b.WriteString(strings.ReplaceAll(title, "'", "''"))
		b.WriteString("';\n")
	}

	b.WriteString("}\n")
	return b.String(), nil
}

// resolveType maps one column or parameter type, resolving the geometry SRS
// first when needed and applying the preview-context TIMESTAMP demotion.
func (f *Formatter) resolveType(
	ctx context.Context,
	cat Catalog,
	schema, object, column, dataType string,
	length int64,
	scale *int64,
	callCtx CallContext,
) (string, error) {
	srs := ""
	if dataType == "ST_POINT" || dataType == "ST_GEOMETRY" {
		id, err := cat.SRSID(ctx, schema, object, column)
		if err != nil {
			return "", err
		}
		srs = id
	}
	if callCtx == ContextPreview && dataType == "TIMESTAMP" {
		return "String", nil
	}
	return MapType(dataType, length, scale, f.Opts.UseHanaTypes, srs), nil
}

// defaultClause renders a column default. Booleans arrive encoded as "1"
// or "0"; any other encoding also falls back to false — a long-standing
// quirk downstream consumers rely on. Non-boolean defaults render as a
// quoted literal verbatim, embedded quotes included.
func defaultClause(dataType, value string) string {
	if dataType == "BOOLEAN" {
		if value == "1" {
			return "default true"
		}
		return "default false"
	}
	return "default '" + value + "'"
}
