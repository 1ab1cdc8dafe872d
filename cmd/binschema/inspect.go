package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/binschema/binschema/schema"
)

func newInspectCmd() *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Render a schema's shape as a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readSchemaFile(schemaPath)
			if err != nil {
				return err
			}

			info, err := os.Stat(schemaPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "schema file: %s (%s)\n\n", schemaPath, humanize.Bytes(uint64(info.Size())))

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Path", "Kind", "Detail"})
			appendSchemaRows(table, "$", s)
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to a meta-schema-encoded schema file")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func appendSchemaRows(table *tablewriter.Table, path string, s *schema.Schema) {
	switch s.Kind {
	case schema.KindOption, schema.KindSeq:
		table.Append([]string{path, s.Kind.String(), seqDetail(s)})
		appendSchemaRows(table, path+".elem", s.Elem)
	case schema.KindTuple:
		table.Append([]string{path, s.Kind.String(), fmt.Sprintf("%d elements", len(s.Elems))})
		for i, e := range s.Elems {
			appendSchemaRows(table, fmt.Sprintf("%s[%d]", path, i), e)
		}
	case schema.KindStruct, schema.KindEnum:
		table.Append([]string{path, s.Kind.String(), fmt.Sprintf("%d fields", len(s.Fields))})
		for _, f := range s.Fields {
			appendSchemaRows(table, path+"."+f.Name, f.Type)
		}
	case schema.KindRecurse:
		table.Append([]string{path, s.Kind.String(), fmt.Sprintf("level %d", s.Level)})
	default:
		table.Append([]string{path, s.Kind.String(), ""})
	}
}

func seqDetail(s *schema.Schema) string {
	if s.Kind == schema.KindSeq && s.Len != nil {
		return fmt.Sprintf("fixed length %d", *s.Len)
	}
	if s.Kind == schema.KindSeq {
		return "variable length"
	}
	return ""
}
