package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskbot configuration file
# Values can be overridden by TASKBOT_* environment variables or CLI flags.

# Task file (relative to the working directory)
task_file = "tasks.json"

# JSON Schema used to check the task file on load (default: built-in)
# schema_file = "tasks.schema.json"

# Name the bot answers to, e.g. "taskbot todo buy milk"
bot_name = "taskbot"

# What to do when the task file cannot be read: "empty" starts with no
# tasks and leaves the file alone until the next change, "fail" exits.
on_malformed = "empty"

# Run log directory (supports ~ and $VAR expansion)
log_dir = "~/.taskbot"

# Write one JSONL event per handled message
run_log = true

# Console logging: debug, info, warn, error / text, json, logfmt
log_level = "info"
log_format = "text"

# Command run after every todo, done or del. It receives the chat command,
# the task, the task file and the source as arguments and the event as JSON
# on stdin.
# hook_command = "~/.taskbot/on-change.sh"
`
}
