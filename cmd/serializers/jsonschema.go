package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newJSONSchemaCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "jsonschema",
		Short: "Print the JSON Schema of a schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(cmd, loggerFor(cmd))
			if err != nil {
				return err
			}
			s, err := lookupSchema(reg, name)
			if err != nil {
				return err
			}
			doc, err := s.JSONSchema()
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), doc)
		},
	}
	cmd.Flags().StringVar(&name, "schema", "", "Name of the schema to export")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func newSchemasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "List the schemas in the definitions file with their fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(cmd, loggerFor(cmd))
			if err != nil {
				return err
			}
			for _, n := range reg.Names() {
				s, _ := reg.Get(n)
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", n, strings.Join(s.FieldNames(), ", "))
			}
			return nil
		},
	}
}
