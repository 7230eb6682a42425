package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/nibzard/taskbot-go/internal/bot"
	"github.com/nibzard/taskbot-go/internal/ui"
)

// chatCommand reads chat lines until EOF and answers those addressed to the
// bot.
func (c *cli) chatCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskbot chat", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	direct := fs.Bool("direct", false, "Treat every line as addressed to the bot")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	b, closeBot, err := c.newBot("chat")
	if err != nil {
		return err
	}
	defer closeBot()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	interactive := ui.IsTTY(c.in)
	for {
		if interactive {
			fmt.Fprint(c.out, "> ")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("reading chat input: %w", err)
					}
				default:
				}
				return nil
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			if *direct {
				line = b.Address(line)
			}
			c.respond(ctx, b, "chat", line)
		}
	}
}

// sayCommand sends a single message. The bot name may be omitted.
func (c *cli) sayCommand(ctx context.Context, args []string) error {
	message := strings.TrimSpace(strings.Join(args, " "))
	if message == "" {
		return fmt.Errorf("say: message required")
	}

	b, closeBot, err := c.newBot("say")
	if err != nil {
		return err
	}
	defer closeBot()

	reply, _, err := b.Handle(ctx, "say", b.Address(message))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, reply)
	return nil
}

// tuiCommand launches the chat console.
func (c *cli) tuiCommand(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	b, closeBot, err := c.newBot("tui")
	if err != nil {
		return err
	}
	defer closeBot()

	return ui.RunTUI(ctx, b, ui.WithTaskFile(c.cfg.TaskFile))
}

// respond handles one line and prints the reply. Persist failures are
// reported in the conversation and the session continues.
func (c *cli) respond(ctx context.Context, b *bot.Bot, source, line string) {
	reply, handled, err := b.Handle(ctx, source, line)
	if err != nil {
		c.logger.Error("command failed", "err", err)
		fmt.Fprintf(c.out, "error: %v\n", err)
		return
	}
	if handled {
		fmt.Fprintln(c.out, reply)
	}
}
