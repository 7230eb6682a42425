package bot

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd lists the registered commands, or describes one.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Show commands" }
func (c *HelpCmd) Usage() string     { return "help [command]" }

func (c *HelpCmd) Run(ctx context.Context, b *Bot, args string) (string, error) {
	if args != "" {
		name, _ := cutWord(args)
		cmd, ok := b.Registry().Find(name)
		if !ok {
			return fmt.Sprintf("no such command: %s", name), nil
		}
		reply := b.usage(cmd) + "\n  " + cmd.Synopsis()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			reply += "\n  aliases: " + strings.Join(aliases, ", ")
		}
		return reply, nil
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	for _, cmd := range b.Registry().All() {
		fmt.Fprintf(tw, "%s\t%s\n", b.usage(cmd), cmd.Synopsis())
	}
	tw.Flush()
	return strings.TrimRight(sb.String(), "\n"), nil
}
