// Package hooks invokes an external command after the task list changes.
package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/nibzard/taskbot-go/internal/logging"
)

// DefaultTimeout bounds a hook run started from Writer.
const DefaultTimeout = 30 * time.Second

// Options configures a hook invocation.
type Options struct {
	Command  string
	Event    logging.Event
	TaskFile string
	WorkDir  string
	Stdout   io.Writer
	Stderr   io.Writer
}

// Result captures the outcome of a hook invocation.
type Result struct {
	Ran      bool
	Command  []string
	ExitCode int
}

// Invoke runs the hook as `<command> <chat command> <task> <task file> <source>`
// with the event as JSON on stdin.
func Invoke(ctx context.Context, opts Options) (Result, error) {
	if opts.Command == "" {
		return Result{}, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	payload, err := json.Marshal(opts.Event)
	if err != nil {
		return Result{}, fmt.Errorf("encode hook event: %w", err)
	}

	args := []string{opts.Event.Command, opts.Event.Task, opts.TaskFile, opts.Event.Source}
	cmd := exec.CommandContext(ctx, opts.Command, args...)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = opts.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = opts.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	err = cmd.Run()
	result := Result{
		Ran:      true,
		Command:  cmd.Args,
		ExitCode: exitCodeFromError(err),
	}
	if err != nil {
		return result, fmt.Errorf("hook command failed: %w", err)
	}
	return result, nil
}

// Writer is an EventWriter that runs the hook for every command that
// changed the task list.
type Writer struct {
	Command  string
	TaskFile string
	WorkDir  string
	Stdout   io.Writer
	Stderr   io.Writer
	Timeout  time.Duration
}

// Write runs the hook if event is a successful todo, done or del.
func (w *Writer) Write(event logging.Event) error {
	if w == nil || !Triggers(event) {
		return nil
	}
	timeout := w.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	_, err := Invoke(ctx, Options{
		Command:  w.Command,
		Event:    event,
		TaskFile: w.TaskFile,
		WorkDir:  w.WorkDir,
		Stdout:   w.Stdout,
		Stderr:   w.Stderr,
	})
	return err
}

// Triggers reports whether event is a successful todo, done or del. A done
// for an unknown task still triggers although the store did not change.
func Triggers(event logging.Event) bool {
	if event.Type != logging.EventCommand {
		return false
	}
	switch event.Command {
	case "todo", "done", "del":
		return true
	}
	return false
}

// Resolve returns the path the hook command runs from, or an error if it
// cannot be found or is not executable.
func Resolve(command string) (string, error) {
	if command == "" {
		return "", errors.New("no hook command")
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return "", fmt.Errorf("hook command %s: %w", command, err)
	}
	return path, nil
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
