package cmd

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/nibzard/taskbot-go/internal/logging"
)

// tailCommand tails the latest run log.
func (c *cli) tailCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskbot tail", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	list := fs.Bool("list", false, "List run logs instead of tailing")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(c.cfg.LogDir, c.cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}

	if *list {
		runs, err := logging.FindLogRuns(logDir)
		if err != nil {
			return fmt.Errorf("listing logs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Fprintln(c.out, "No log files found.")
			return nil
		}
		tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RUN\tMODIFIED\tSIZE")
		for _, run := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", run.RunID, run.ModTime.Format("2006-01-02 15:04:05"), run.Size)
		}
		return tw.Flush()
	}

	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(c.out, "No log files found.")
		return nil
	}

	fmt.Fprintf(c.out, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(c.out, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(c.out)

	return logging.TailLog(ctx, c.out, logPath, *n, *follow)
}
