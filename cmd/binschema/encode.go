package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/binschema/binschema/codec"
	"github.com/binschema/binschema/schema"
)

func newEncodeCmd() *cobra.Command {
	var schemaPath, valuePath, outPath string

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a JSON value against a schema file into the wire format",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readSchemaFile(schemaPath)
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(valuePath)
			if err != nil {
				return err
			}
			var doc any
			if err := json.Unmarshal(raw, &doc); err != nil {
				return err
			}

			v, err := valueFromJSON(s, doc)
			if err != nil {
				return err
			}

			out, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer out.Close()

			return codec.Encode(out, s, v)
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "path to a meta-schema-encoded schema file")
	cmd.Flags().StringVar(&valuePath, "value", "", "path to a JSON value file")
	cmd.Flags().StringVar(&outPath, "out", "", "path to write the encoded message")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("value")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

// readSchemaFile loads a meta-schema-encoded schema from disk.
func readSchemaFile(path string) (*schema.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", path, err)
	}
	defer f.Close()
	return codec.DecodeSchema(f)
}
