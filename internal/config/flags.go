package config

import "flag"

// flagKeys maps flag names to the config keys they set.
var flagKeys = map[string]string{
	"tasks":        "task_file",
	"schema":       "schema_file",
	"log-dir":      "log_dir",
	"bot-name":     "bot_name",
	"on-malformed": "on_malformed",
	"log-level":    "log_level",
	"log-format":   "log_format",
	"run-log":      "run_log",
	"hook":         "hook_command",
}

// parseFlags defines the global flags on fs, parses args and records which
// keys were set explicitly.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskbot", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.TaskFile, "tasks", cfg.TaskFile, "Path to task file")
	fs.StringVar(&cfg.SchemaFile, "schema", cfg.SchemaFile, "Path to a JSON Schema for the task file (default: built-in)")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Run log directory")
	fs.StringVar(&cfg.BotName, "bot-name", cfg.BotName, "Name the bot answers to")
	fs.StringVar(&cfg.OnMalformed, "on-malformed", cfg.OnMalformed, "What to do with an unreadable task file (empty, fail)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.RunLog, "run-log", cfg.RunLog, "Write a JSONL run log")
	fs.StringVar(&cfg.HookCommand, "hook", cfg.HookCommand, "Command to run after every todo, done or del")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			cfg.Sources[key] = SourceFlag
		}
	})
	return nil
}
