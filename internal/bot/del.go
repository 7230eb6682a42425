package bot

import "context"

func init() {
	Register(&DelCmd{})
}

// DelCmd deletes a task in either state.
type DelCmd struct{}

func (c *DelCmd) Name() string      { return "del" }
func (c *DelCmd) Aliases() []string { return []string{"rm"} }
func (c *DelCmd) Synopsis() string  { return "Delete a task" }
func (c *DelCmd) Usage() string     { return "del <task>" }

func (c *DelCmd) Run(ctx context.Context, b *Bot, args string) (string, error) {
	if args == "" {
		return "", ErrUsage
	}
	if err := b.Store().Remove(args); err != nil {
		return "", err
	}
	return "deleted: " + args, nil
}
