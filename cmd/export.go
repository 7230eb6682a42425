package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/taskbot-go/internal/export"
)

// exportCommand renders the task list to stdout or a file.
func (c *cli) exportCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskbot export", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	format := fs.String("format", "", "Output format (json, yaml, markdown, html, pdf, csv)")
	outPath := fs.String("out", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *format == "" {
		*format = export.FormatFromPath(*outPath)
	}
	if *format == "" {
		*format = "markdown"
	}

	store, err := c.openStore()
	if err != nil {
		return err
	}

	data, err := export.NewExporter(store, export.WithLabel(store.Path())).Export(ctx, *format)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if *outPath == "" {
		_, err := c.out.Write(data)
		return err
	}
	if err := os.WriteFile(*outPath, data, 0644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	c.logger.Info("exported", "format", *format, "path", *outPath, "tasks", store.Len())
	return nil
}
