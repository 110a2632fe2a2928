package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reoring/goserializer/dsl"
	"github.com/reoring/goserializer/internal/logging"
)

// errInvalid marks a run whose input failed validation. The error list has
// already been printed, so Execute only maps it to the exit code.
var errInvalid = errors.New("input failed validation")

func newRootCmd() *cobra.Command {
	cfg, err := loadEnv()
	root := &cobra.Command{
		Use:           "serializers",
		Short:         "Validate and normalize records against declarative schemas",
		Long:          `serializers loads schema definitions from a YAML or JSON file and validates input records against them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("defs", cfg.Defs, "Schema definitions file (.yaml, .yml or .json) [$SERIALIZERS_DEFS]")
	root.PersistentFlags().String("log-level", cfg.LogLevel, "Log level: debug, info, warn or error [$SERIALIZERS_LOG_LEVEL]")
	if cfg.Defs == "" {
		_ = root.MarkPersistentFlagRequired("defs")
	}
	if err != nil {
		root.PersistentPreRunE = func(*cobra.Command, []string) error {
			return fmt.Errorf("environment: %w", err)
		}
	}

	root.AddCommand(newValidateCmd(), newJSONSchemaCmd(), newSchemasCmd())
	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	return run(newRootCmd(), os.Args[1:])
}

func run(root *cobra.Command, args []string) int {
	root.SetArgs(args)
	err := root.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errInvalid):
		return 1
	default:
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return 1
	}
}

func loggerFor(cmd *cobra.Command) *slog.Logger {
	lvl, _ := cmd.Flags().GetString("log-level")
	return logging.NewWriter(cmd.ErrOrStderr(), logging.ParseLevel(lvl))
}

// loadRegistry reads the --defs file, picking the decoder by extension.
func loadRegistry(cmd *cobra.Command, log *slog.Logger) (*dsl.Registry, error) {
	path, _ := cmd.Flags().GetString("defs")
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definitions: %w", err)
	}
	var reg *dsl.Registry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		reg, err = dsl.LoadJSON(b, dsl.WithLoadLogger(log))
	default:
		reg, err = dsl.LoadYAML(b, dsl.WithLoadLogger(log))
	}
	if err != nil {
		return nil, err
	}
	log.Debug("definitions loaded", "path", path, "schemas", len(reg.Names()))
	return reg, nil
}

func lookupSchema(reg *dsl.Registry, name string) (*dsl.Schema, error) {
	s, ok := reg.Get(name)
	if !ok {
		return nil, fmt.Errorf("schema %q not found (have: %s)", name, strings.Join(reg.Names(), ", "))
	}
	return s, nil
}
