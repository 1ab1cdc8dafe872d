package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/binschema/binschema/codec"
)

func newDecodeCmd() *cobra.Command {
	var schemaPath, inPath string

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode a wire-format message against a schema file and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readSchemaFile(schemaPath)
			if err != nil {
				return err
			}

			f, err := os.Open(inPath)
			if err != nil {
				return err
			}
			defer f.Close()

			v, err := codec.Decode(f, s)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(valueToJSON(v))
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to a meta-schema-encoded schema file")
	cmd.Flags().StringVar(&inPath, "in", "", "path to the encoded message")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}
