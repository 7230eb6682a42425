package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values.
const (
	DefaultTaskFile    = "tasks.json"
	DefaultBotName     = "taskbot"
	DefaultLogDir      = "~/.taskbot"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultOnMalformed = "empty"
)

// Config holds the full configuration for taskbot.
type Config struct {
	// Paths
	TaskFile   string `toml:"task_file"`
	SchemaFile string `toml:"schema_file"`
	LogDir     string `toml:"log_dir"`

	// Bot
	BotName     string `toml:"bot_name"`
	OnMalformed string `toml:"on_malformed"` // empty | fail

	// Logging
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	RunLog    bool   `toml:"run_log"`

	// Hook runs after every todo, done or del
	HookCommand string `toml:"hook_command"`

	// Derived
	ProjectRoot string                  `toml:"-"`
	Sources     map[string]ConfigSource `toml:"-"`
	Files       []string                `toml:"-"` // config files that were read
	Unknown     []string                `toml:"-"` // keys in config files that matched no field
}

// fieldKeys lists the TOML keys tracked in Sources.
func fieldKeys() []string {
	return []string{
		"task_file",
		"schema_file",
		"log_dir",
		"bot_name",
		"on_malformed",
		"log_level",
		"log_format",
		"run_log",
		"hook_command",
	}
}

// Source returns where key was last set.
func (c *Config) Source(key string) ConfigSource {
	if s, ok := c.Sources[key]; ok {
		return s
	}
	return SourceDefault
}
