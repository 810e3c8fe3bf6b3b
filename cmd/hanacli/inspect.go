package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hanatools/hanacli/internal/cds"
	"github.com/hanatools/hanacli/internal/database"
	"github.com/hanatools/hanacli/internal/errs"
	"github.com/hanatools/hanacli/internal/inspect"
)

var (
	inspectSchema string
	inspectFormat formatFlags
)

// formatFlags are the entity-rendering switches shared by the inspect and
// massconvert commands.
type formatFlags struct {
	hanaTypes bool
	noColons  bool
	keepPath  bool
	useExists bool
	useQuoted bool
}

func (f formatFlags) options() cds.Options {
	return cds.Options{
		UseHanaTypes: f.hanaTypes,
		NoColons:     f.noColons,
		KeepPath:     f.keepPath,
		UseExists:    f.useExists,
		UseQuoted:    f.useQuoted,
	}
}

func (f *formatFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.hanaTypes, "hana-types", false, "use hana.* vendor types instead of CDS core types")
	cmd.Flags().BoolVar(&f.noColons, "no-colons", false, "flatten :: namespace separators to underscores")
	cmd.Flags().BoolVar(&f.keepPath, "keep-path", false, "keep dots in object names instead of flattening them")
	cmd.Flags().BoolVar(&f.useExists, "use-exists", false, "annotate entities with @cds.persistence.exists")
	cmd.Flags().BoolVar(&f.useQuoted, "quoted", false, "emit identifiers in ![...] delimiters")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <table|view|procedure|function> <name>",
	Short: "Render one catalog object as a CDS entity definition",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		kind, name := args[0], args[1]

		client, err := database.NewClient(database.Prompts{
			Profile: flagProfile,
			Schema:  inspectSchema,
			Table:   name,
		}, cfg)
		if err != nil {
			return err
		}
		if err := client.Connect(ctx); err != nil {
			return err
		}
		defer client.Disconnect(ctx)

		insp := inspect.New(client.Querier(), log)
		formatter := cds.NewFormatter(inspectFormat.options())
		schema := client.SchemaCalculation()

		text, err := renderObject(ctx, insp, formatter, kind, schema, name)
		if err != nil {
			return err
		}
		fmt.Print(text)
		return nil
	},
}

// renderObject fetches one object's metadata and renders it. The table path
// additionally appends the extended-syntax passthrough block from the raw
// definition.
func renderObject(ctx context.Context, insp *inspect.Inspector, formatter *cds.Formatter, kind, schema, name string) (string, error) {
	switch kind {
	case "table":
		objs, err := insp.GetTable(ctx, schema, name)
		if err != nil {
			return "", err
		}
		fields, err := insp.GetTableFields(ctx, objs[0].OID)
		if err != nil {
			return "", err
		}
		constraints, err := insp.GetConstraints(ctx, schema, name)
		if err != nil {
			return "", err
		}
		text, err := formatter.FormatEntity(ctx, insp, objs[0], fields, constraints,
			inspect.KindTable, schema, cds.ContextNone, nil)
		if err != nil {
			return "", err
		}
		if definition, err := insp.GetObjectDefinition(ctx, schema, name); err == nil {
			text = cds.ParseSQLOptions(definition, text)
		}
		return text, nil

	case "view":
		objs, err := insp.GetView(ctx, schema, name)
		if err != nil {
			return "", err
		}
		fields, err := insp.GetViewFields(ctx, objs[0].OID)
		if err != nil {
			return "", err
		}
		var params []inspect.Parameter
		if objs[0].HasParameters {
			if params, err = insp.GetViewParameters(ctx, objs[0].OID); err != nil {
				return "", err
			}
		}
		return formatter.FormatEntity(ctx, insp, objs[0], fields, nil,
			inspect.KindView, schema, cds.ContextNone, params)

	case "procedure":
		objs, err := insp.GetProcedure(ctx, schema, name)
		if err != nil {
			return "", err
		}
		params, err := insp.GetProcedureParameters(ctx, objs[0].OID)
		if err != nil {
			return "", err
		}
		return formatter.FormatEntity(ctx, insp, objs[0], nil, nil,
			inspect.KindProcedure, schema, cds.ContextNone, params)

	case "function":
		objs, err := insp.GetFunction(ctx, schema, name)
		if err != nil {
			return "", err
		}
		params, err := insp.GetFunctionParameters(ctx, objs[0].OID)
		if err != nil {
			return "", err
		}
		return formatter.FormatEntity(ctx, insp, objs[0], nil, nil,
			inspect.KindFunction, schema, cds.ContextNone, params)

	default:
		return "", errs.Newf(errs.ErrKindInvalidInput, "unknown object kind %q", kind)
	}
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectSchema, "schema", "s", "", "schema name (default: profile schema)")
	inspectFormat.register(inspectCmd)
}
