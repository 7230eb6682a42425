package cmd

import (
	"flag"
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/taskbot-go/internal/config"
)

// configCommand prints an example config, or the effective one with the
// source of every value.
func (c *cli) configCommand(args []string) error {
	fs := flag.NewFlagSet("taskbot config", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	effective := fs.Bool("effective", false, "Print the effective configuration")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if !*effective {
		fmt.Fprint(c.out, config.ExampleConfig())
		return nil
	}

	if err := toml.NewEncoder(c.out).Encode(c.cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	keys := make([]string, 0, len(c.cfg.Sources))
	for key := range c.cfg.Sources {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "# Sources:")
	for _, key := range keys {
		fmt.Fprintf(c.out, "#   %s: %s\n", key, c.cfg.Source(key))
	}
	return nil
}
