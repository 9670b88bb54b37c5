package main

import (
	"context"
	"fmt"
	"io"

	"github.com/Yamashou/gqlir/codegen"
	"github.com/Yamashou/gqlir/config"
	"github.com/Yamashou/gqlir/plugins"
	"github.com/Yamashou/gqlir/schema"
)

type options struct {
	dir     string
	verbose bool
	// stdout and flat override the config file when set.
	stdout bool
	flat   bool
}

func run(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	logf := func(format string, args ...any) {
		if opts.verbose {
			fmt.Fprintf(stderr, format+"\n", args...)
		}
	}

	cfgFile, err := config.FindConfigFile(opts.dir, config.DefaultConfigNames)
	if err != nil {
		return fmt.Errorf("failed to find config file: %w", err)
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}
	if opts.stdout {
		cfg.Stdout = true
	}
	if opts.flat {
		cfg.FlatOutput = true
	}
	logf("config: %s", cfgFile)

	doc, err := cfg.LoadSchema(ctx)
	if err != nil {
		return fmt.Errorf("failed to load schema: %w", err)
	}

	info := schema.Build(doc)
	logf("schema: %d types, %d enums, %d scalars", len(info.Types), len(info.Enums), len(info.Scalars))

	result, err := codegen.NewCollector(cfg.Scalars).Collect(info)
	if err != nil {
		return fmt.Errorf("failed to resolve types: %w", err)
	}
	logf("resolved: %d types", len(result.Types))

	if err := plugins.GenerateCode(cfg, result, stdout); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	if !cfg.Stdout {
		logf("output: %s", cfg.OutputDir())
	}

	return nil
}
