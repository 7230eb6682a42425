package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from TASKBOT_* environment variables.
func loadFromEnv(cfg *Config) {
	set := func(key, env string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			cfg.Sources[key] = SourceEnv
		}
	}

	set("task_file", "TASKBOT_TASKS", &cfg.TaskFile)
	set("schema_file", "TASKBOT_SCHEMA", &cfg.SchemaFile)
	set("log_dir", "TASKBOT_LOG_DIR", &cfg.LogDir)
	set("bot_name", "TASKBOT_NAME", &cfg.BotName)
	set("on_malformed", "TASKBOT_ON_MALFORMED", &cfg.OnMalformed)
	set("log_level", "TASKBOT_LOG_LEVEL", &cfg.LogLevel)
	set("log_format", "TASKBOT_LOG_FORMAT", &cfg.LogFormat)
	set("hook_command", "TASKBOT_HOOK", &cfg.HookCommand)

	if v := os.Getenv("TASKBOT_RUN_LOG"); v != "" {
		cfg.RunLog = boolFromString(v)
		cfg.Sources["run_log"] = SourceEnv
	}
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
