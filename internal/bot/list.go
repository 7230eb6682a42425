package bot

import (
	"context"
	"strings"
)

func init() {
	Register(&ListCmd{})
	Register(&DoneListCmd{})
}

// ListCmd lists pending tasks.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List pending tasks" }
func (c *ListCmd) Usage() string     { return "list" }

func (c *ListCmd) Run(ctx context.Context, b *Bot, args string) (string, error) {
	return joinTasks(b.Store().ListPending(), "(no pending tasks)"), nil
}

// DoneListCmd lists completed tasks.
type DoneListCmd struct{}

func (c *DoneListCmd) Name() string      { return "donelist" }
func (c *DoneListCmd) Aliases() []string { return nil }
func (c *DoneListCmd) Synopsis() string  { return "List completed tasks" }
func (c *DoneListCmd) Usage() string     { return "donelist" }

func (c *DoneListCmd) Run(ctx context.Context, b *Bot, args string) (string, error) {
	return joinTasks(b.Store().ListCompleted(), "(no completed tasks)"), nil
}

func joinTasks(tasks []string, empty string) string {
	if len(tasks) == 0 {
		return empty
	}
	return strings.Join(tasks, "\n")
}
