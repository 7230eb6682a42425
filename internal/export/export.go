// Package export renders a snapshot of the task store in several formats.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/taskbot-go/internal/tasks"

	"gopkg.in/yaml.v3"
)

// Source provides the entries to export.
type Source interface {
	Entries() []tasks.Entry
}

// Report is the structured form used by the json and yaml formats.
type Report struct {
	Generated time.Time `json:"generated" yaml:"generated"`
	Source    string    `json:"source,omitempty" yaml:"source,omitempty"`
	Pending   []string  `json:"pending" yaml:"pending"`
	Completed []string  `json:"completed" yaml:"completed"`
}

type renderFunc func(e *Exporter, r Report, entries []tasks.Entry) ([]byte, error)

var renderers = map[string]renderFunc{
	"json":     renderJSON,
	"yaml":     renderYAML,
	"markdown": renderMarkdown,
	"html":     renderHTML,
	"pdf":      renderPDF,
	"csv":      renderCSV,
}

var aliases = map[string]string{
	"yml": "yaml",
	"md":  "markdown",
	"htm": "html",
}

// Formats returns the supported format names.
func Formats() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormatFromPath guesses a format from a file extension. It returns "" when
// the extension is not recognized.
func FormatFromPath(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	name, err := normalize(path[i+1:])
	if err != nil {
		return ""
	}
	return name
}

func normalize(format string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(format))
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	if _, ok := renderers[name]; !ok {
		return "", fmt.Errorf("unknown format %s (want one of %s)", format, strings.Join(Formats(), ", "))
	}
	return name, nil
}

// Exporter renders a task source.
type Exporter struct {
	src   Source
	label string
	now   func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLabel names the source, usually the task file path.
func WithLabel(label string) Option {
	return func(e *Exporter) { e.label = label }
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// NewExporter creates an exporter for src.
func NewExporter(src Source, opts ...Option) *Exporter {
	e := &Exporter{src: src, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export renders the current entries in format.
func (e *Exporter) Export(ctx context.Context, format string) ([]byte, error) {
	name, err := normalize(format)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := e.src.Entries()
	report := Report{
		Generated: e.now().UTC().Truncate(time.Second),
		Source:    e.label,
		Pending:   make([]string, 0, len(entries)),
		Completed: make([]string, 0, len(entries)),
	}
	for _, entry := range entries {
		if entry.Done {
			report.Completed = append(report.Completed, entry.Description)
		} else {
			report.Pending = append(report.Pending, entry.Description)
		}
	}

	out, err := renderers[name](e, report, entries)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return out, nil
}

func renderJSON(_ *Exporter, r Report, _ []tasks.Entry) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderYAML(_ *Exporter, r Report, _ []tasks.Entry) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderCSV(_ *Exporter, _ Report, entries []tasks.Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"task", "done"}); err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if err := w.Write([]string{entry.Description, strconv.FormatBool(entry.Done)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
