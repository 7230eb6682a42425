package bot

import "context"

func init() {
	Register(&DoneCmd{})
}

// DoneCmd marks a task completed. Unknown tasks are ignored by the store, so
// the reply is the same either way.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "done <task>" }

func (c *DoneCmd) Run(ctx context.Context, b *Bot, args string) (string, error) {
	if args == "" {
		return "", ErrUsage
	}
	if err := b.Store().Complete(args); err != nil {
		return "", err
	}
	return "done: " + args, nil
}
