package cmd

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/taskbot-go/internal/hooks"
	"github.com/nibzard/taskbot-go/internal/logging"
	"github.com/nibzard/taskbot-go/internal/tasks"
)

// doctorCommand checks config, the task file and the log directory.
func (c *cli) doctorCommand(args []string) error {
	fs := flag.NewFlagSet("taskbot doctor", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	cfg := c.cfg
	out := c.out

	fmt.Fprintln(out, "Taskbot Doctor")
	fmt.Fprintln(out, "==============")
	fmt.Fprintln(out)

	allOK := true

	// Config
	fmt.Fprintln(out, "Config:")
	if len(cfg.Files) == 0 {
		fmt.Fprintln(out, "  ✅ No config file (using defaults)")
	}
	for _, f := range cfg.Files {
		fmt.Fprintf(out, "  ✅ Loaded %s\n", f)
	}
	for _, u := range cfg.Unknown {
		fmt.Fprintf(out, "  ⚠️  Unknown key %s\n", u)
	}
	fmt.Fprintf(out, "  ✅ Bot name: %s (%s)\n", cfg.BotName, cfg.Source("bot_name"))
	fmt.Fprintf(out, "  ✅ On malformed file: %s\n", cfg.OnMalformed)
	fmt.Fprintln(out)

	// Task file
	fmt.Fprintf(out, "Task file: %s\n", cfg.TaskFile)
	info, err := os.Stat(cfg.TaskFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintln(out, "  ⚠️  Not found (will be created on the first change)")
	case err != nil:
		fmt.Fprintf(out, "  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Fprintln(out, "  ❌ Error: path is a directory")
		allOK = false
	default:
		fmt.Fprintln(out, "  ✅ OK")
		if !c.checkTaskFile(*verbose) {
			allOK = false
		}
	}
	fmt.Fprintln(out)

	// Schema file
	if cfg.SchemaFile == "" {
		fmt.Fprintln(out, "Schema file: (built-in)")
		fmt.Fprintln(out, "  ✅ OK")
	} else {
		fmt.Fprintf(out, "Schema file: %s\n", cfg.SchemaFile)
		if info, err := os.Stat(cfg.SchemaFile); err != nil {
			fmt.Fprintf(out, "  ⚠️  %v (the built-in schema will be used)\n", err)
		} else if info.IsDir() {
			fmt.Fprintln(out, "  ❌ Error: path is a directory")
			allOK = false
		} else {
			fmt.Fprintln(out, "  ✅ OK")
		}
	}
	fmt.Fprintln(out)

	// Change hook
	if cfg.HookCommand == "" {
		fmt.Fprintln(out, "Change hook: none")
	} else {
		fmt.Fprintf(out, "Change hook: %s\n", cfg.HookCommand)
		if path, err := hooks.Resolve(cfg.HookCommand); err != nil {
			fmt.Fprintf(out, "  ❌ Error: %v\n", err)
			allOK = false
		} else {
			fmt.Fprintf(out, "  ✅ OK (%s)\n", path)
		}
	}
	fmt.Fprintln(out)

	// Log directory
	if !cfg.RunLog {
		fmt.Fprintln(out, "Run log: disabled")
	} else {
		logDir, err := logging.FindLogDir(cfg.LogDir, cfg.ProjectRoot)
		if err != nil {
			fmt.Fprintf(out, "Log directory: %s\n", cfg.LogDir)
			fmt.Fprintf(out, "  ❌ Error: %v\n", err)
			allOK = false
		} else {
			fmt.Fprintf(out, "Log directory: %s\n", logDir)
			if _, err := os.Stat(logDir); err != nil {
				if os.IsNotExist(err) {
					fmt.Fprintln(out, "  ⚠️  Not found (will be created on the first chat)")
				} else {
					fmt.Fprintf(out, "  ❌ Error: %v\n", err)
					allOK = false
				}
			} else {
				fmt.Fprintln(out, "  ✅ OK")
				if *verbose {
					if latest, err := logging.FindLatestLog(logDir); err == nil && latest != "" {
						fmt.Fprintf(out, "  Latest: %s\n", latest)
					}
				}
			}
		}
	}
	fmt.Fprintln(out)

	if allOK {
		fmt.Fprintln(out, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(out, "⚠️  Some checks failed. Taskbot may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// checkTaskFile validates the task file contents against the schema.
func (c *cli) checkTaskFile(verbose bool) bool {
	out := c.out
	data, err := os.ReadFile(c.cfg.TaskFile)
	if err != nil {
		fmt.Fprintf(out, "  ❌ Read error: %v\n", err)
		return false
	}

	result := tasks.Validate(data, tasks.ValidationOptions{SchemaPath: c.cfg.SchemaFile})
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "  ⚠️  %s\n", w)
	}
	if !result.Valid {
		fmt.Fprintln(out, "  ❌ Validation failed:")
		for _, e := range result.Errors {
			fmt.Fprintf(out, "     - %v\n", e)
		}
		if c.cfg.OnMalformed == tasks.MalformedEmpty {
			fmt.Fprintln(out, "     (taskbot will start with an empty list and overwrite the file on the first change)")
		}
		return false
	}
	fmt.Fprintf(out, "  ✅ Valid (%d tasks)\n", result.Entries)

	if verbose {
		entries, err := tasks.Decode(data)
		if err != nil {
			fmt.Fprintf(out, "  ❌ Decode error: %v\n", err)
			return false
		}
		for _, e := range entries {
			mark := " "
			if e.Done {
				mark = "x"
			}
			fmt.Fprintf(out, "    - [%s] %s\n", mark, e.Description)
		}
	}
	return true
}
