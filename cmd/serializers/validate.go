package main

import (
	"context"
	"fmt"
	"io"
	"os"

	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	goserializer "github.com/reoring/goserializer"
	"github.com/reoring/goserializer/source"
)

type validateFlags struct {
	schema        string
	many          bool
	format        string
	failFast      bool
	applyDefaults bool
	rejectDupKeys bool
	maxBytes      int64
}

func newValidateCmd() *cobra.Command {
	var f validateFlags
	cmd := &cobra.Command{
		Use:   "validate [file|-]",
		Short: "Validate input against a schema",
		Long: `Decodes the input (a file, or stdin when omitted or "-"), validates it against
the named schema and prints the normalized result as JSON. On failure the
error list is printed and the exit code is 1.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(cmd, f, path)
		},
	}
	cmd.Flags().StringVar(&f.schema, "schema", "", "Name of the schema to validate against")
	cmd.Flags().BoolVar(&f.many, "many", false, "Treat the input as a list of records")
	cmd.Flags().StringVar(&f.format, "format", "", "Input format: json or yaml (default: from file extension, json for stdin)")
	cmd.Flags().BoolVar(&f.failFast, "fail-fast", false, "Stop at the first failing field")
	cmd.Flags().BoolVar(&f.applyDefaults, "apply-defaults", false, "Emit declared defaults for absent optional fields")
	cmd.Flags().BoolVar(&f.rejectDupKeys, "reject-duplicate-keys", false, "Fail JSON input that repeats an object key")
	cmd.Flags().Int64Var(&f.maxBytes, "max-bytes", 0, "Maximum input size in bytes (0: unlimited)")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func runValidate(cmd *cobra.Command, f validateFlags, path string) error {
	log := loggerFor(cmd)
	reg, err := loadRegistry(cmd, log)
	if err != nil {
		return err
	}
	schema, err := lookupSchema(reg, f.schema)
	if err != nil {
		return err
	}

	format := source.FormatJSON
	if path != "-" {
		format = source.FormatFromPath(path)
	}
	if f.format != "" {
		if format, err = source.ParseFormat(f.format); err != nil {
			return err
		}
	}

	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		fh, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer fh.Close()
		r = fh
	}
	data, err := source.Read(format, r, source.Options{RejectDuplicateKeys: f.rejectDupKeys, MaxBytes: f.maxBytes})
	if err != nil {
		return fmt.Errorf("decode input: %w", err)
	}

	ctx := goserializer.WithLogger(context.Background(), log)
	out, err := schema.Validate(ctx, data, goserializer.Options{
		Many:          f.many,
		FailFast:      f.failFast,
		ApplyDefaults: f.applyDefaults,
	})
	if el, ok := goserializer.AsErrorList(err); ok {
		log.Info("validation failed", "schema", f.schema, "errors", len(el))
		if werr := writeJSON(cmd.OutOrStdout(), el); werr != nil {
			return werr
		}
		return errInvalid
	}
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), out)
}

func writeJSON(w io.Writer, v any) error {
	b, err := j.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
