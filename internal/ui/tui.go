// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/taskbot-go/internal/bot"
)

const (
	defaultTranscript = 200
	historyLimit      = 50
	panelItems        = 8
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	taskFile   string
	transcript int
}

// WithTaskFile shows path in the footer.
func WithTaskFile(path string) TUIOption {
	return func(c *tuiConfig) {
		c.taskFile = path
	}
}

// WithTranscriptLimit caps how many transcript lines are kept.
func WithTranscriptLimit(n int) TUIOption {
	return func(c *tuiConfig) {
		if n > 0 {
			c.transcript = n
		}
	}
}

// RunTUI starts the interactive chat console for b.
func RunTUI(ctx context.Context, b *bot.Bot, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newChatModel(b, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type speaker int

const (
	speakerUser speaker = iota
	speakerBot
	speakerError
)

type transcriptLine struct {
	who  speaker
	text string
}

type chatModel struct {
	bot      *bot.Bot
	cfg      tuiConfig
	input    []rune
	history  []string
	histPos  int
	lines    []transcriptLine
	showHelp bool
	height   int
	quitting bool
}

func newChatModel(b *bot.Bot, opts ...TUIOption) *chatModel {
	cfg := tuiConfig{transcript: defaultTranscript}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &chatModel{bot: b, cfg: cfg}
}

func (m *chatModel) Init() tea.Cmd {
	m.appendLine(speakerBot, fmt.Sprintf("Hi, I'm %s. Type \"help\" to see what I can do.", m.bot.Name()))
	return nil
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyCtrlD:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit()
		case tea.KeyBackspace:
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
		case tea.KeyCtrlU:
			m.input = m.input[:0]
		case tea.KeyCtrlL:
			m.lines = nil
		case tea.KeyF1:
			m.showHelp = !m.showHelp
		case tea.KeyUp:
			m.recall(-1)
		case tea.KeyDown:
			m.recall(1)
		case tea.KeySpace:
			m.input = append(m.input, ' ')
		case tea.KeyRunes:
			m.input = append(m.input, msg.Runes...)
		}
	}
	return m, nil
}

// submit sends the input line to the bot. The console talks to the bot
// directly, so a line without the bot name is treated as addressed to it.
func (m *chatModel) submit() {
	text := strings.TrimSpace(string(m.input))
	m.input = m.input[:0]
	if text == "" {
		return
	}
	m.history = append(m.history, text)
	if len(m.history) > historyLimit {
		m.history = m.history[len(m.history)-historyLimit:]
	}
	m.histPos = len(m.history)
	m.appendLine(speakerUser, text)

	reply, _, err := m.bot.Handle(context.Background(), "tui", m.bot.Address(text))
	if err != nil {
		m.appendLine(speakerError, "error: "+err.Error())
		return
	}
	m.appendLine(speakerBot, reply)
}

func (m *chatModel) recall(delta int) {
	if len(m.history) == 0 {
		return
	}
	pos := m.histPos + delta
	if pos < 0 {
		pos = 0
	}
	if pos >= len(m.history) {
		m.histPos = len(m.history)
		m.input = m.input[:0]
		return
	}
	m.histPos = pos
	m.input = []rune(m.history[pos])
}

func (m *chatModel) appendLine(who speaker, text string) {
	for _, line := range strings.Split(text, "\n") {
		m.lines = append(m.lines, transcriptLine{who: who, text: line})
	}
	if over := len(m.lines) - m.cfg.transcript; over > 0 {
		m.lines = m.lines[over:]
	}
}

func (m *chatModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	writeTitle(&b, m.bot.Name())

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.cfg.taskFile)
		return b.String()
	}

	store := m.bot.Store()
	writePanel(&b, "Pending", store.ListPending())
	writePanel(&b, "Completed", store.ListCompleted())

	b.WriteString("Conversation\n\n")
	for _, line := range m.visibleLines() {
		b.WriteString(formatLine(line, m.bot.Name()))
		b.WriteString("\n")
	}
	b.WriteString("\n> " + string(m.input) + "_\n\n")
	writeFooter(&b, m.cfg.taskFile)
	return b.String()
}

// visibleLines returns the transcript tail that fits the window.
func (m *chatModel) visibleLines() []transcriptLine {
	if m.height <= 0 {
		return m.lines
	}
	room := m.height - 2*(panelItems+3) - 8
	if room < 3 {
		room = 3
	}
	if len(m.lines) <= room {
		return m.lines
	}
	return m.lines[len(m.lines)-room:]
}

func writeTitle(b *strings.Builder, name string) {
	title := name + " chat"
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writePanel(b *strings.Builder, heading string, items []string) {
	b.WriteString(fmt.Sprintf("%s (%d)\n", heading, len(items)))
	if len(items) == 0 {
		b.WriteString("  (none)\n\n")
		return
	}
	shown := items
	if len(shown) > panelItems {
		shown = shown[len(shown)-panelItems:]
		b.WriteString(fmt.Sprintf("  ... %d more\n", len(items)-panelItems))
	}
	for _, item := range shown {
		b.WriteString("  - " + item + "\n")
	}
	b.WriteString("\n")
}

func formatLine(line transcriptLine, name string) string {
	switch line.who {
	case speakerUser:
		return "you: " + line.text
	case speakerError:
		return "!! " + line.text
	default:
		return name + ": " + line.text
	}
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  enter          Send the line to the bot\n")
	b.WriteString("  up, down       Recall earlier lines\n")
	b.WriteString("  ctrl+u         Clear the input\n")
	b.WriteString("  ctrl+l         Clear the conversation\n")
	b.WriteString("  F1             Toggle this help screen\n")
	b.WriteString("  esc, ctrl+c    Quit\n\n")
	b.WriteString("Lines are sent to the bot with or without its name.\n\n")
}

func writeFooter(b *strings.Builder, taskFile string) {
	footer := "F1 for help | esc to quit"
	if taskFile != "" {
		footer += " | " + taskFile
	}
	b.WriteString(footer + "\n")
}

// IsTTY returns true if stream is a terminal. Only *os.File can be one.
func IsTTY(stream any) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
