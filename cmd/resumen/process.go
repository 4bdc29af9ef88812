package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"resumenapi/internal/deliveryreport"
	"resumenapi/internal/exporter"
	"resumenapi/internal/infrastructure"
	"resumenapi/internal/services"
	"resumenapi/internal/validation"
	"resumenapi/internal/workbook"
	"resumenapi/pkg/contracts/domain"
)

type processOptions struct {
	outDir  string
	variant string
	sheet   string
	quiet   bool
	csv     bool
}

func newProcessCommand(state *cliState) *cobra.Command {
	opts := &processOptions{}

	cmd := &cobra.Command{
		Use:   "process <file.xlsx>",
		Short: "Write resumen_<name>.xlsx next to the input, or into --out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, state, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "output directory (defaults to the input's directory)")
	cmd.Flags().StringVar(&opts.variant, "variant", "", "aggregation rules: A, B or C (defaults to the configured variant)")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "sheet to read (defaults to the configured source sheet)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the summary table")
	cmd.Flags().BoolVar(&opts.csv, "csv", false, "also write the summary as resumen_<name>.csv")

	return cmd
}

func runProcess(cmd *cobra.Command, state *cliState, opts *processOptions, input string) error {
	ctx := infrastructure.EnsureTraceID(cmd.Context())
	logger := infrastructure.WithComponent(state.logger, "cli")

	variantName := state.cfg.Report.Variant
	if opts.variant != "" {
		variantName = opts.variant
	}
	variant, err := deliveryreport.ParseVariant(variantName)
	if err != nil {
		return err
	}

	sheet := state.cfg.Report.SourceSheet
	if opts.sheet != "" {
		sheet = opts.sheet
	}

	outDir := opts.outDir
	if outDir == "" {
		outDir = filepath.Dir(input)
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateSpreadsheet(input); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(outDir); err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open %s: %w", input, err)
	}
	defer f.Close()

	svc := services.NewReportService(
		deliveryreport.NewBuilder(variant, logger),
		workbook.NewCodec(workbook.Limits{MaxUnzipSize: state.cfg.Upload.MaxUnzipBytes}),
		nil, nil, logger, sheet,
	)

	result, err := svc.Process(ctx, filepath.Base(input), f)
	if err != nil {
		return err
	}

	outPath := filepath.Join(outDir, result.Filename)
	if err := os.WriteFile(outPath, result.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	logger.Info("Summary written",
		slog.String("output", outPath),
		slog.String("variant", variant.String()),
		slog.Int("drivers", len(result.Report.Drivers)))

	out := cmd.OutOrStdout()
	if !opts.quiet {
		if err := printSummary(out, result.Report); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, outPath)

	if opts.csv {
		csvPath, err := exporter.NewCSVWriter(logger).WriteReport(outDir, input, result.Report)
		if err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		fmt.Fprintln(out, csvPath)
	}
	return nil
}

// printSummary renders the summary sheet as an aligned text table.
func printSummary(w io.Writer, report *domain.Report) error {
	table := report.SummaryTable()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	writeRow := func(cells []string) {
		for _, c := range cells {
			fmt.Fprintf(tw, "%s\t", c)
		}
		fmt.Fprintln(tw)
	}

	writeRow(table.Columns)
	for _, row := range table.Rows {
		writeRow(row)
	}
	return tw.Flush()
}
