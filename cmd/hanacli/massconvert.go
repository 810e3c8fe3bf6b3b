package main

import (
	"github.com/spf13/cobra"

	"github.com/hanatools/hanacli/internal/database"
	"github.com/hanatools/hanacli/internal/filestore"
	"github.com/hanatools/hanacli/internal/filestore/minio"
	"github.com/hanatools/hanacli/internal/inspect"
	"github.com/hanatools/hanacli/internal/massconvert"
	"github.com/hanatools/hanacli/internal/progress"
)

var (
	mcSchema   string
	mcTable    string
	mcLimit    int
	mcOutput   string
	mcFolder   string
	mcFilename string
	mcZip      bool
	mcSynonyms string
	mcFormat   formatFlags

	mcUploadEndpoint  string
	mcUploadBucket    string
	mcUploadAccessKey string
	mcUploadSecretKey string
)

var massConvertCmd = &cobra.Command{
	Use:   "massconvert",
	Short: "Convert all matching tables in one batch",
	Long: `Convert all tables matching the schema and table patterns in one run.

Output kinds:
  cds         CDS entity definitions, one bundle file (or --zip archive)
  tables      raw hdbtable artifacts in a ZIP archive
  migrations  raw hdbmigrationtable artifacts in a ZIP archive`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, err := database.NewClient(database.Prompts{
			Profile: flagProfile,
			Schema:  mcSchema,
			Table:   mcTable,
			Limit:   mcLimit,
		}, cfg)
		if err != nil {
			return err
		}
		if err := client.Connect(ctx); err != nil {
			return err
		}
		defer client.Disconnect(ctx)

		opts := massconvert.Options{
			Table:    mcTable,
			Limit:    mcLimit,
			Output:   massconvert.OutputKind(mcOutput),
			Folder:   mcFolder,
			Filename: mcFilename,
			Zip:      mcZip,
			Synonyms: mcSynonyms,
			Format:   mcFormat.options(),
		}

		if mcUploadEndpoint != "" {
			storeCfg := filestore.DefaultConfig(mcUploadEndpoint, mcUploadAccessKey, mcUploadSecretKey)
			store, err := minio.New(ctx, storeCfg)
			if err != nil {
				return err
			}
			defer store.Close()
			opts.Store = store
			opts.Bucket = mcUploadBucket
			if opts.Bucket == "" {
				opts.Bucket = storeCfg.Bucket
			}
		}

		insp := inspect.New(client.Querier(), log)
		conv := massconvert.New(client, insp, log, opts)
		return conv.Convert(ctx, progress.Log{Logger: log})
	},
}

func init() {
	massConvertCmd.Flags().StringVarP(&mcSchema, "schema", "s", "", "schema name or pattern (default: profile schema)")
	massConvertCmd.Flags().StringVarP(&mcTable, "table", "t", "*", "table name pattern, * for all")
	massConvertCmd.Flags().IntVarP(&mcLimit, "limit", "l", 0, "maximum tables to convert (default 200)")
	massConvertCmd.Flags().StringVarP(&mcOutput, "output", "o", "cds", "output kind: cds, tables or migrations")
	massConvertCmd.Flags().StringVar(&mcFolder, "folder", ".", "directory the artifact is written to")
	massConvertCmd.Flags().StringVar(&mcFilename, "filename", "export", "artifact base name")
	massConvertCmd.Flags().BoolVar(&mcZip, "zip", false, "archive CDS output instead of one bundle file")
	massConvertCmd.Flags().StringVar(&mcSynonyms, "synonyms", "", "also write the synonym registry to this JSON file")
	mcFormat.register(massConvertCmd)

	massConvertCmd.Flags().StringVar(&mcUploadEndpoint, "upload-endpoint", "", "object storage endpoint to upload the artifact to")
	massConvertCmd.Flags().StringVar(&mcUploadBucket, "upload-bucket", "", "object storage bucket (default \"exports\")")
	massConvertCmd.Flags().StringVar(&mcUploadAccessKey, "upload-access-key", "", "object storage access key")
	massConvertCmd.Flags().StringVar(&mcUploadSecretKey, "upload-secret-key", "", "object storage secret key")
}
