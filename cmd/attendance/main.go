// Command attendance analyzes punch-clock exports from the terminal.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

// engineFlags are shared by every command that runs the pipeline.
type engineFlags struct {
	restDay       string
	locale        string
	timezone      string
	targetWorkday time.Duration
	directory     string
	verbose       bool
}

// filterFlags mirror the API's filter query parameters.
type filterFlags struct {
	employeeID string
	date       string
	month      string
	year       int
	startDate  string
	endDate    string
}

func newRootCmd() *cobra.Command {
	opts := &engineFlags{}

	root := &cobra.Command{
		Use:   "attendance",
		Short: "Analyze punch-clock exports",
		Long: `attendance turns raw punch-clock exports (.dat, .txt, .csv, .xlsx) into daily
attendance records, inferred absences and per-employee statistics.

Examples:
  attendance analyze attlog.dat
  attendance analyze march.dat april.dat --rest-day sunday --month 2024-03
  attendance export attlog.dat -o attendance.xlsx
  attendance report attlog.dat --employee 1001 --locale ar
  attendance directory --directory employees.yaml`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.restDay, "rest-day", "friday", "weekly day off excluded from absences")
	pf.StringVar(&opts.locale, "locale", "en", "day names and placeholders: en or ar")
	pf.StringVar(&opts.timezone, "timezone", "UTC", "IANA zone that timestamps with an explicit offset are converted into")
	pf.DurationVar(&opts.targetWorkday, "target", 8*time.Hour, "expected work day length for deviations")
	pf.StringVar(&opts.directory, "directory", "", "employee directory file (.yaml, .yml or .toml)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log skipped lines and pipeline progress")

	root.AddCommand(
		newAnalyzeCmd(opts),
		newExportCmd(opts),
		newReportCmd(opts),
		newDirectoryCmd(opts),
		newTokenCmd(),
	)
	return root
}

func addFilterFlags(cmd *cobra.Command, f *filterFlags) {
	fs := cmd.Flags()
	fs.StringVar(&f.employeeID, "employee", "", "only this employee ID")
	fs.StringVar(&f.date, "date", "", "only this day (YYYY-MM-DD)")
	fs.StringVar(&f.month, "month", "", "only this month (YYYY-MM)")
	fs.IntVar(&f.year, "year", 0, "only this year")
	fs.StringVar(&f.startDate, "from", "", "first day of the window (YYYY-MM-DD)")
	fs.StringVar(&f.endDate, "to", "", "last day of the window (YYYY-MM-DD)")
}
