// Package bot turns chat lines addressed to the bot into task store
// operations and replies.
//
// A line is addressed to the bot when its first word is the bot name, with
// an optional leading "@" and an optional trailing ":" or ",":
//
//	taskbot todo buy milk
//	@taskbot: done buy milk
//	TaskBot, list
//
// The second word selects a command from the registry and the rest of the
// line, trimmed, is its argument. Commands register themselves with
// DefaultRegistry in init.
package bot
