// Package massconvert batches the CDS conversion engine across many tables.
//
// The run is strictly sequential — one table at a time, each awaited before
// the next — which keeps connection usage flat and progress ordering
// deterministic. There is no cancellation beyond the context: a batch runs
// to completion or returns an error.
package massconvert

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/hanatools/hanacli/internal/cds"
	"github.com/hanatools/hanacli/internal/database"
	"github.com/hanatools/hanacli/internal/errs"
	"github.com/hanatools/hanacli/internal/filestore"
	"github.com/hanatools/hanacli/internal/inspect"
	"github.com/hanatools/hanacli/internal/logger"
	"github.com/hanatools/hanacli/internal/progress"
)

// OutputKind selects what the batch produces.
type OutputKind string

const (
	// OutputCDS emits normalized CDS entity definitions.
	OutputCDS OutputKind = "cds"

	// OutputTables emits raw hdbtable artifacts, one archive entry per table.
	OutputTables OutputKind = "tables"

	// OutputMigrations emits hdbmigrationtable artifacts.
	OutputMigrations OutputKind = "migrations"
)

// Options are the previously-captured request parameters driving one batch.
// The schema is not among them: it reaches the batch through the client's
// prompts and is resolved by SchemaCalculation.
type Options struct {
	Table string // table name pattern, "*" for all
	Limit int    // candidate bound for the listing query

	Output   OutputKind
	Folder   string
	Filename string

	// Zip switches the CDS output from one concatenated bundle file to a
	// compressed archive with one entry per object. The raw output kinds
	// always produce an archive.
	Zip bool

	// Synonyms, when non-empty, is the path of the JSON synonym registry
	// side file written after a CDS run.
	Synonyms string

	// Format configures the entity formatter for the batch.
	Format cds.Options

	// Store, when set, uploads the produced artifact to object storage.
	Store  filestore.Store
	Bucket string
}

// Converter drives one mass conversion batch.
type Converter struct {
	client database.Client
	insp   *inspect.Inspector
	log    *logger.Logger
	opts   Options
}

// New creates a Converter. The client must already be connected.
func New(client database.Client, insp *inspect.Inspector, log *logger.Logger, opts Options) *Converter {
	if log == nil {
		log = logger.New(nil)
	}
	return &Converter{client: client, insp: insp, log: log, opts: opts}
}

// Convert runs the batch, streaming per-object progress to sink. Errors
// are logged, broadcast to the sink and returned. A nil sink is tolerated.
func (c *Converter) Convert(ctx context.Context, sink progress.Sink) error {
	if sink == nil {
		sink = progress.Nop{}
	}
	if err := c.run(ctx, sink); err != nil {
		c.log.ErrorWith("mass conversion failed", err, map[string]interface{}{
			"output": string(c.opts.Output),
		})
		sink.Broadcast("Error: "+err.Error(), 100)
		return err
	}
	return nil
}

func (c *Converter) run(ctx context.Context, sink progress.Sink) error {
	schema := c.client.AdjustWildcard(c.client.SchemaCalculation())
	pattern := c.client.AdjustWildcard(c.opts.Table)

	tables, err := c.insp.SearchTables(ctx, schema, pattern, c.opts.Limit)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		return errs.Newf(errs.ErrKindNotFound, "no tables match %s.%s", schema, pattern)
	}
	c.log.Infof("converting %d tables from %s", len(tables), schema)

	switch c.opts.Output {
	case OutputCDS:
		err = c.convertCDS(ctx, sink, tables)
	case OutputTables, OutputMigrations:
		err = c.convertRaw(ctx, sink, tables)
	default:
		err = errs.Newf(errs.ErrKindUnsupportedConfig, "unsupported output kind %q", c.opts.Output)
	}
	if err != nil {
		return err
	}

	sink.Broadcast("conversion complete", 100)
	return nil
}

// convertCDS runs the structured path: catalog reader + formatter per table,
// aggregated into a bundle file or an archive.
func (c *Converter) convertCDS(ctx context.Context, sink progress.Sink, tables []inspect.Object) error {
	formatter := cds.NewFormatter(c.opts.Format)
	n := len(tables)

	var bundle strings.Builder
	var entries []Entry

	for idx, t := range tables {
		sink.Broadcast(t.ObjectName, idx*100/n)

		objs, err := c.insp.GetTable(ctx, t.SchemaName, t.ObjectName)
		if err != nil {
			return err
		}
		fields, err := c.insp.GetTableFields(ctx, objs[0].OID)
		if err != nil {
			return err
		}
		constraints, err := c.insp.GetConstraints(ctx, t.SchemaName, t.ObjectName)
		if err != nil {
			return err
		}

		text, err := formatter.FormatEntity(ctx, c.insp, objs[0], fields, constraints,
			inspect.KindTable, t.SchemaName, cds.ContextNone, nil)
		if err != nil {
			return err
		}

		// Carry over storage clauses the CDS language cannot express.
		definition, err := c.insp.GetObjectDefinition(ctx, t.SchemaName, t.ObjectName)
		if err == nil {
			text = cds.ParseSQLOptions(definition, text)
		} else {
			c.log.Debugf("no raw definition for %s: %v", t.ObjectName, err)
		}

		if c.opts.Zip {
			entries = append(entries, Entry{Name: t.ObjectName + ".cds", Body: []byte(text)})
		} else {
			bundle.WriteString(text)
			bundle.WriteString("\n")
		}
	}

	if err := c.writeOutput(ctx, entries, bundle.String(), ".cds"); err != nil {
		return err
	}
	return c.writeSynonyms(formatter)
}

// convertRaw runs the raw-definition path. Per-object errors abort the
// whole batch — only the column-store type cleanup below is best effort.
func (c *Converter) convertRaw(ctx context.Context, sink progress.Sink, tables []inspect.Object) error {
	n := len(tables)
	suffix := ".hdbtable"
	if c.opts.Output == OutputMigrations {
		suffix = ".hdbmigrationtable"
	}

	var entries []Entry
	for idx, t := range tables {
		sink.Broadcast(t.ObjectName, idx*100/n)

		definition, err := c.insp.GetObjectDefinition(ctx, t.SchemaName, t.ObjectName)
		if err != nil {
			return err
		}
		definition = c.insp.RemoveCSTypes(ctx, definition, t.SchemaName, t.ObjectName)
		body := rewriteDefinition(definition, t.SchemaName)

		if c.opts.Output == OutputMigrations {
			body = "== version = 1\n" + body
		}
		entries = append(entries, Entry{Name: t.ObjectName + suffix, Body: []byte(body)})
	}

	return c.writeOutput(ctx, entries, "", suffix)
}

// rewriteDefinition turns a CREATE statement into the deployment-artifact
// form: the fixed "CREATE " prefix goes, and schema qualification is
// rewritten away so the artifact deploys into any container.
func rewriteDefinition(definition, schema string) string {
	const createPrefix = "CREATE "
	if len(definition) > len(createPrefix) && strings.EqualFold(definition[:len(createPrefix)], createPrefix) {
		definition = definition[len(createPrefix):]
	}
	definition = strings.ReplaceAll(definition, `"`+schema+`".`, "")
	return strings.ReplaceAll(definition, schema+".", "")
}

// writeOutput persists either the archive entries or the bundle text, and
// uploads the artifact when a store is configured.
func (c *Converter) writeOutput(ctx context.Context, entries []Entry, bundle, suffix string) error {
	name := c.opts.Filename
	if name == "" {
		name = "export"
	}

	if len(entries) > 0 {
		path := filepath.Join(c.opts.Folder, name+".zip")
		data, err := BuildArchive(entries)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errs.Wrap(errs.ErrKindQueryFailed, "write archive", err)
		}
		c.log.Infof("wrote %s (%d entries)", path, len(entries))
		return c.upload(ctx, path, data, "application/zip")
	}

	path := filepath.Join(c.opts.Folder, name+suffix)
	if err := os.WriteFile(path, []byte(bundle), 0o644); err != nil {
		return errs.Wrap(errs.ErrKindQueryFailed, "write bundle", err)
	}
	c.log.Infof("wrote %s", path)
	return c.upload(ctx, path, []byte(bundle), "text/plain")
}

// upload pushes the artifact to object storage when configured.
func (c *Converter) upload(ctx context.Context, path string, data []byte, contentType string) error {
	if c.opts.Store == nil {
		return nil
	}
	if err := c.opts.Store.EnsureBucket(ctx, c.opts.Bucket); err != nil {
		return err
	}
	key := filepath.Base(path)
	if err := c.opts.Store.PutObject(ctx, c.opts.Bucket, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return err
	}
	c.log.Infof("uploaded %s to bucket %s", key, c.opts.Bucket)
	return nil
}

// writeSynonyms persists the synonym registry side file, pretty-printed
// with tab indentation.
func (c *Converter) writeSynonyms(formatter *cds.Formatter) error {
	if c.opts.Synonyms == "" {
		return nil
	}
	data, err := json.MarshalIndent(formatter.Synonyms(), "", "\t")
	if err != nil {
		return errs.Wrap(errs.ErrKindQueryFailed, "encode synonyms", err)
	}
	if err := os.WriteFile(c.opts.Synonyms, data, 0o644); err != nil {
		return errs.Wrap(errs.ErrKindQueryFailed, "write synonyms", err)
	}
	c.log.Infof("wrote synonym registry %s", c.opts.Synonyms)
	return nil
}
