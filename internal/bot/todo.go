package bot

import "context"

func init() {
	Register(&TodoCmd{})
}

// TodoCmd adds a pending task.
type TodoCmd struct{}

func (c *TodoCmd) Name() string      { return "todo" }
func (c *TodoCmd) Aliases() []string { return []string{"add"} }
func (c *TodoCmd) Synopsis() string  { return "Add a pending task" }
func (c *TodoCmd) Usage() string     { return "todo <task>" }

func (c *TodoCmd) Run(ctx context.Context, b *Bot, args string) (string, error) {
	if args == "" {
		return "", ErrUsage
	}
	if err := b.Store().Create(args); err != nil {
		return "", err
	}
	return "added: " + args, nil
}
