package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nibzard/taskbot-go/internal/logging"
)

// Store is the task store the commands operate on.
type Store interface {
	Create(description string) error
	Complete(description string) error
	Remove(description string) error
	ListPending() []string
	ListCompleted() []string
}

// Options configures a Bot.
type Options struct {
	// Registry defaults to DefaultRegistry.
	Registry *Registry
	// Events receives one event per handled message. Defaults to a NullWriter.
	Events logging.EventWriter
	// Now stamps events. Defaults to time.Now.
	Now func() time.Time
	// Warn receives event write failures, which never fail a command.
	Warn func(msg string, keyvals ...any)
}

// Bot dispatches chat lines addressed to it.
type Bot struct {
	name     string
	store    Store
	registry *Registry
	events   logging.EventWriter
	now      func() time.Time
	warn     func(msg string, keyvals ...any)
}

// New creates a bot that answers to name.
func New(name string, store Store, opts Options) *Bot {
	if opts.Registry == nil {
		opts.Registry = DefaultRegistry
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Warn == nil {
		opts.Warn = func(string, ...any) {}
	}
	return &Bot{
		name:     name,
		store:    store,
		registry: opts.Registry,
		events:   logging.Synchronized(opts.Events),
		now:      opts.Now,
		warn:     opts.Warn,
	}
}

// Name returns the name the bot answers to.
func (b *Bot) Name() string { return b.name }

// Store returns the task store.
func (b *Bot) Store() Store { return b.store }

// Registry returns the command registry.
func (b *Bot) Registry() *Registry { return b.registry }

// Address prefixes text with the bot name unless it is already addressed to
// the bot. Front ends that talk to the bot directly use it before Handle.
func (b *Bot) Address(text string) string {
	if _, ok := Parse(b.name, text); ok {
		return text
	}
	return b.name + " " + strings.TrimSpace(text)
}

// Handle processes one chat line from source. Lines not addressed to the bot
// return handled == false. A command that could not persist its change
// returns the error and an empty reply.
func (b *Bot) Handle(ctx context.Context, source, text string) (reply string, handled bool, err error) {
	msg, ok := Parse(b.name, text)
	if !ok {
		return "", false, nil
	}
	if err := ctx.Err(); err != nil {
		return "", true, err
	}

	event := logging.Event{
		Type:      logging.EventCommand,
		Timestamp: b.now().UTC(),
		Source:    source,
		Message:   text,
		Command:   msg.Command,
		Task:      msg.Args,
	}
	defer func() {
		event.Reply = reply
		if werr := b.events.Write(event); werr != nil {
			b.warn("could not write event", "err", werr)
		}
	}()

	name := msg.Command
	if name == "" {
		name = "help"
	}
	cmd, ok := b.registry.Find(name)
	if !ok {
		event.Type = logging.EventUnknown
		return fmt.Sprintf("unknown command: %s (try %q)", msg.Command, b.name+" help"), true, nil
	}
	event.Command = cmd.Name()

	reply, err = cmd.Run(ctx, b, msg.Args)
	if errors.Is(err, ErrUsage) {
		event.Type = logging.EventUsage
		return "usage: " + b.usage(cmd), true, nil
	}
	if err != nil {
		event.Type = logging.EventError
		event.Error = err.Error()
		return "", true, err
	}
	return reply, true, nil
}

func (b *Bot) usage(cmd Command) string {
	return b.name + " " + cmd.Usage()
}
