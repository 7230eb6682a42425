// Package cmd implements the CLI command structure for taskbot.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskbot-go/internal/bot"
	"github.com/nibzard/taskbot-go/internal/config"
	"github.com/nibzard/taskbot-go/internal/hooks"
	"github.com/nibzard/taskbot-go/internal/logging"
	"github.com/nibzard/taskbot-go/internal/tasks"
)

// Version is set via ldflags at build time.
var Version = "dev"

// cli carries the loaded config and the streams commands read and write.
type cli struct {
	cfg    *config.Config
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	logger *log.Logger
}

// Run executes the taskbot CLI on the process streams.
func Run(ctx context.Context, args []string) error {
	return RunIO(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

// RunIO executes the taskbot CLI with the given streams.
func RunIO(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("taskbot", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		printUsage(fs, errOut)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	c := &cli{
		cfg:    cfg,
		in:     in,
		out:    out,
		errOut: errOut,
		logger: logging.NewConsoleFromConfig(errOut, cfg.LogLevel, cfg.LogFormat),
	}
	for _, unknown := range cfg.Unknown {
		c.logger.Warn("unknown config key", "key", unknown)
	}

	if *help {
		printUsage(fs, out)
		return nil
	}
	if *showVersion {
		return c.versionCommand()
	}

	// No subcommand means an interactive chat on stdin.
	subcommand := "chat"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "chat":
		return c.chatCommand(ctx, remainingArgs)
	case "say":
		return c.sayCommand(ctx, remainingArgs)
	case "tui":
		return c.tuiCommand(ctx, remainingArgs)
	case "ls":
		return c.lsCommand(remainingArgs)
	case "export":
		return c.exportCommand(ctx, remainingArgs)
	case "doctor":
		return c.doctorCommand(remainingArgs)
	case "tail":
		return c.tailCommand(ctx, remainingArgs)
	case "config":
		return c.configCommand(remainingArgs)
	case "version":
		return c.versionCommand()
	case "help":
		printUsage(fs, out)
		return nil
	default:
		fmt.Fprintf(errOut, "Unknown command: %s\n", subcommand)
		printUsage(fs, errOut)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openStore opens the configured task file.
func (c *cli) openStore() (*tasks.Store, error) {
	store, err := tasks.Open(c.cfg.TaskFile, tasks.OpenOptions{
		SchemaPath:  c.cfg.SchemaFile,
		OnMalformed: c.cfg.OnMalformed,
		Warn:        c.warn,
	})
	if err != nil {
		return nil, fmt.Errorf("opening task file: %w", err)
	}
	c.logger.Debug("task file loaded", "path", store.Path(), "tasks", store.Len())
	return store, nil
}

// newBot opens the store and wires the bot's event log. The returned close
// function flushes the run log.
func (c *cli) newBot(source string) (*bot.Bot, func(), error) {
	store, err := c.openStore()
	if err != nil {
		return nil, nil, err
	}

	writers := []logging.EventWriter{logging.NewConsoleWriter(c.logger)}
	closeFn := func() {}
	if c.cfg.RunLog {
		runLog, err := logging.NewRunLogger(c.cfg.LogDir, c.cfg.ProjectRoot)
		if err != nil {
			c.logger.Warn("run log disabled", "err", err)
		} else {
			writers = append(writers, runLog)
			closeFn = func() {
				if err := runLog.Close(); err != nil {
					c.logger.Warn("closing run log", "err", err)
				}
			}
			if err := runLog.Write(logging.Event{
				Type:    logging.EventStart,
				Source:  source,
				Message: store.Path(),
			}); err != nil {
				c.logger.Warn("could not write event", "err", err)
			}
			c.logger.Debug("run log", "path", runLog.LogPath)
		}
	}

	if c.cfg.HookCommand != "" {
		writers = append(writers, &hooks.Writer{
			Command:  c.cfg.HookCommand,
			TaskFile: store.Path(),
			WorkDir:  c.cfg.ProjectRoot,
			Stdout:   c.errOut,
			Stderr:   c.errOut,
		})
		c.logger.Debug("change hook", "command", c.cfg.HookCommand)
	}

	b := bot.New(c.cfg.BotName, store, bot.Options{
		Events: logging.NewMultiWriter(writers...),
		Warn:   c.warn,
	})
	return b, closeFn, nil
}

func (c *cli) warn(msg string, keyvals ...any) {
	c.logger.Warn(msg, keyvals...)
}

// versionCommand prints version information.
func (c *cli) versionCommand() error {
	fmt.Fprintf(c.out, "taskbot version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Taskbot - a chat bot that keeps a todo list in a JSON file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskbot [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  chat                Read chat lines from stdin (default command)")
	fmt.Fprintln(w, "  say <message...>    Send one message to the bot")
	fmt.Fprintln(w, "  tui                 Launch the chat console")
	fmt.Fprintln(w, "  ls [pending|done]   List tasks by state")
	fmt.Fprintln(w, "  export              Write the task list as json, yaml, markdown, html, pdf or csv")
	fmt.Fprintln(w, "  doctor              Check config, task file and log directory")
	fmt.Fprintln(w, "  tail                Show the latest run log")
	fmt.Fprintln(w, "  config              Print an example or the effective config")
	fmt.Fprintln(w, "  version             Show version information")
	fmt.Fprintln(w, "  help                Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Chat messages:")
	fmt.Fprintln(w, "  <bot> todo <task>   Add a pending task")
	fmt.Fprintln(w, "  <bot> done <task>   Mark a task completed")
	fmt.Fprintln(w, "  <bot> del <task>    Delete a task")
	fmt.Fprintln(w, "  <bot> list          List pending tasks")
	fmt.Fprintln(w, "  <bot> donelist      List completed tasks")
	fmt.Fprintln(w, "  <bot> help          List all chat commands")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Chat Options (use with 'chat' command):")
	fmt.Fprintln(w, "  -direct")
	fmt.Fprintln(w, "        Treat every line as addressed to the bot")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options (use with 'export' command):")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format (default: from -out extension, else markdown)")
	fmt.Fprintln(w, "  -out string")
	fmt.Fprintln(w, "        Output file (default: stdout)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w, "  -list")
	fmt.Fprintln(w, "        List run logs instead of tailing")
}
