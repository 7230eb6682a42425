package bot

import (
	"strings"
	"unicode"
)

// Message is a chat line addressed to the bot.
type Message struct {
	Raw     string
	Command string // lower-cased; empty when only the name was given
	Args    string // trimmed, inner spacing preserved
}

// Parse reports whether text is addressed to botName and splits it into a
// command and its argument.
func Parse(botName, text string) (Message, bool) {
	name, rest := cutWord(strings.TrimSpace(text))
	name = strings.TrimPrefix(name, "@")
	name = strings.TrimRight(name, ":,")
	if botName == "" || !strings.EqualFold(name, botName) {
		return Message{}, false
	}

	cmd, args := cutWord(rest)
	return Message{
		Raw:     text,
		Command: strings.ToLower(cmd),
		Args:    strings.TrimSpace(args),
	}, true
}

// cutWord splits s at the first run of whitespace after leading spaces.
func cutWord(s string) (word, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}
