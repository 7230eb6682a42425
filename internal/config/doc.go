// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.taskbot/taskbot.toml or OS-specific config directory)
// 3. Project config file (taskbot.toml or .taskbot.toml in the working directory)
// 4. Environment variables (TASKBOT_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence. The
// layer that last set each key is recorded in Config.Sources.
//
// User-level config locations:
// - ~/.taskbot/taskbot.toml (preferred)
// - Windows: %APPDATA%\taskbot\taskbot.toml
// - macOS: ~/Library/Application Support/taskbot/taskbot.toml
// - Linux/BSD: $XDG_CONFIG_HOME/taskbot/taskbot.toml or ~/.config/taskbot/taskbot.toml
package config
