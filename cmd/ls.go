package cmd

import (
	"flag"
	"fmt"
	"io"
)

// lsCommand lists tasks grouped by state, in insertion order.
func (c *cli) lsCommand(args []string) error {
	fs := flag.NewFlagSet("taskbot ls", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	state := ""
	if len(remaining) == 1 {
		state = remaining[0]
	}

	store, err := c.openStore()
	if err != nil {
		return err
	}

	switch state {
	case "":
		pending, completed := store.ListPending(), store.ListCompleted()
		if len(pending) == 0 && len(completed) == 0 {
			fmt.Fprintln(c.out, "No tasks found.")
			return nil
		}
		printGroup(c.out, "pending", pending)
		printGroup(c.out, "done", completed)
	case "pending", "todo":
		printTaskList(c.out, store.ListPending())
	case "done", "completed":
		printTaskList(c.out, store.ListCompleted())
	default:
		return fmt.Errorf("unknown state %q (expected pending or done)", state)
	}
	return nil
}

// printGroup prints a labelled group, skipping empty ones.
func printGroup(w io.Writer, label string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%s (%d):\n", label, len(items))
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
	fmt.Fprintln(w)
}

// printTaskList prints one description per line.
func printTaskList(w io.Writer, items []string) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}
	for _, item := range items {
		fmt.Fprintln(w, item)
	}
}
