package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hanatools/hanacli/internal/database"
)

var (
	tablesSchema string
	tablesFilter string
	tablesLimit  int
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List tables visible through the selected profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		client, err := database.NewClient(database.Prompts{
			Profile: flagProfile,
			Schema:  tablesSchema,
			Table:   tablesFilter,
			Limit:   tablesLimit,
		}, cfg)
		if err != nil {
			return err
		}
		if err := client.Connect(ctx); err != nil {
			return err
		}
		defer client.Disconnect(ctx)

		tables, err := client.ListTables(ctx)
		if err != nil {
			return err
		}
		for _, t := range tables {
			if t.Comments != "" {
				fmt.Printf("%s.%s\t%s\n", t.SchemaName, t.TableName, t.Comments)
				continue
			}
			fmt.Printf("%s.%s\n", t.SchemaName, t.TableName)
		}
		return nil
	},
}

func init() {
	tablesCmd.Flags().StringVarP(&tablesSchema, "schema", "s", "", "schema name or pattern (default: profile schema)")
	tablesCmd.Flags().StringVarP(&tablesFilter, "table", "t", "*", "table name pattern, * for all")
	tablesCmd.Flags().IntVarP(&tablesLimit, "limit", "l", 0, "maximum rows to list (default 200)")
}
