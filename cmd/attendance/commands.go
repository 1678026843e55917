package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/elmallah-hr/attendance-backend-go/internal/config"
	"github.com/elmallah-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/elmallah-hr/attendance-backend-go/internal/pkg/jwt"
	attendancesvc "github.com/elmallah-hr/attendance-backend-go/internal/service/attendance"
	"github.com/elmallah-hr/attendance-backend-go/internal/service/directory"
	"github.com/elmallah-hr/attendance-backend-go/internal/service/export"
	reportsvc "github.com/elmallah-hr/attendance-backend-go/internal/service/report"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxParallelFiles bounds how many punch logs analyze reads at once.
const maxParallelFiles = 4

func (o *engineFlags) engine() (attendancesvc.Engine, error) {
	restDay, err := attendance.ParseWeekday(o.restDay)
	if err != nil {
		return attendancesvc.Engine{}, fmt.Errorf("--rest-day: %w", err)
	}
	locale, err := attendance.LocaleByCode(o.locale)
	if err != nil {
		return attendancesvc.Engine{}, fmt.Errorf("--locale: %w", err)
	}
	loc, err := time.LoadLocation(o.timezone)
	if err != nil {
		return attendancesvc.Engine{}, fmt.Errorf("--timezone: %w", err)
	}
	return attendancesvc.NewEngine(
		attendancesvc.WithRestDay(restDay),
		attendancesvc.WithLocale(locale),
		attendancesvc.WithLocation(loc),
		attendancesvc.WithTargetWorkday(o.targetWorkday),
	), nil
}

func (o *engineFlags) loadDirectory() (attendance.EmployeeDirectory, error) {
	if o.directory == "" {
		return attendance.EmployeeDirectory{}, nil
	}
	return directory.LoadFile(o.directory)
}

// analysisService wires the engine to a static snapshot of the directory file.
// Uploads are never archived from the CLI.
func (o *engineFlags) analysisService() (attendance.AnalysisService, attendancesvc.Engine, error) {
	engine, err := o.engine()
	if err != nil {
		return nil, attendancesvc.Engine{}, err
	}
	dir, err := o.loadDirectory()
	if err != nil {
		return nil, attendancesvc.Engine{}, err
	}
	return attendancesvc.NewAnalysisService(engine, directory.NewStaticProvider(dir), nil, 0), engine, nil
}

func (f filterFlags) filter() attendance.AnalysisFilter {
	var filter attendance.AnalysisFilter
	if f.employeeID != "" {
		filter.EmployeeID = &f.employeeID
	}
	if f.date != "" {
		filter.Date = &f.date
	}
	if f.month != "" {
		filter.Month = &f.month
	}
	if f.year != 0 {
		filter.Year = &f.year
	}
	if f.startDate != "" {
		filter.StartDate = &f.startDate
	}
	if f.endDate != "" {
		filter.EndDate = &f.endDate
	}
	return filter
}

func analyzeFile(ctx context.Context, svc attendance.AnalysisService, path string, filter attendance.AnalysisFilter) (attendance.AnalysisResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return attendance.AnalysisResult{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return attendance.AnalysisResult{}, err
	}

	result, err := svc.Analyze(ctx, attendance.AnalyzeRequest{
		FileName: filepath.Base(path),
		Size:     info.Size(),
		File:     f,
		Filter:   filter,
	})
	if err != nil {
		return attendance.AnalysisResult{}, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}

func newAnalyzeCmd(opts *engineFlags) *cobra.Command {
	filters := &filterFlags{}
	cmd := &cobra.Command{
		Use:   "analyze FILE...",
		Short: "Print overview and per-employee statistics for punch logs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, engine, err := opts.analysisService()
			if err != nil {
				return err
			}

			// Each file is an independent run; output keeps argument order
			results := make([]attendance.AnalysisResult, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(maxParallelFiles)
			for i, path := range args {
				i, path := i, path
				g.Go(func() error {
					result, err := analyzeFile(ctx, svc, path, filters.filter())
					if err != nil {
						return err
					}
					results[i] = result
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, result := range results {
				if i > 0 {
					fmt.Fprintln(out)
				}
				renderAnalysis(out, args[i], result, engine.Locale())
			}
			return nil
		},
	}
	addFilterFlags(cmd, filters)
	return cmd
}

func newExportCmd(opts *engineFlags) *cobra.Command {
	filters := &filterFlags{}
	var output string
	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write the records in view to CSV or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ext := strings.ToLower(filepath.Ext(output))
			if ext != ".csv" && ext != ".xlsx" {
				return fmt.Errorf("--output must end in .csv or .xlsx")
			}

			svc, _, err := opts.analysisService()
			if err != nil {
				return err
			}
			result, err := analyzeFile(cmd.Context(), svc, args[0], filters.filter())
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if ext == ".csv" {
				err = export.WriteCSV(f, result.Records)
			} else {
				err = export.WriteXLSX(f, result.Records, result.Stats)
			}
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %d records to %s\n", successStyle.Render("exported"), len(result.Records), output)
			return nil
		},
	}
	addFilterFlags(cmd, filters)
	cmd.Flags().StringVarP(&output, "output", "o", "", "destination file (.csv or .xlsx)")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func newReportCmd(opts *engineFlags) *cobra.Command {
	var employeeID string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "report FILE",
		Short: "Print one employee's full attendance history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, engine, err := opts.analysisService()
			if err != nil {
				return err
			}
			// Reports ignore filters: the full history is always shown
			result, err := analyzeFile(cmd.Context(), svc, args[0], attendance.AnalysisFilter{})
			if err != nil {
				return err
			}

			reports := reportsvc.NewReportService(svc, engine)
			rep := reports.BuildFromRecords(employeeID, result.AllRecords)
			resp := reports.ToResponse(rep)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			renderReport(cmd.OutOrStdout(), resp)
			return nil
		},
	}
	cmd.Flags().StringVarP(&employeeID, "employee", "e", "", "employee ID to report on")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	_ = cmd.MarkFlagRequired("employee")
	return cmd
}

func newDirectoryCmd(opts *engineFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "directory",
		Short: "Print the employee directory resolved from --directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.directory == "" {
				return fmt.Errorf("--directory is required")
			}
			dir, err := opts.loadDirectory()
			if err != nil {
				return err
			}
			renderDirectory(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	var subject string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API access token signed with JWT_SECRET_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render("expires "+time.Unix(expiresAt, 0).UTC().Format(time.RFC3339)))
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "who the token is issued to")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
