package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/SAP-F-2025/assessment-console/internal/importer"
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/SAP-F-2025/assessment-console/internal/utils"
	"github.com/spf13/cobra"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Bulk import and export questions",
}

var questionsImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Upload a question CSV to a test",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		path := args[0]
		if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
			return previewFile(a.out, path)
		}

		testID, _ := cmd.Flags().GetString("test")
		file, err := importer.NewLocalFile(path)
		if err != nil {
			return err
		}

		wf := importer.NewWorkflow(a.services.Questions(),
			importer.WithNotifier(a.hub),
			importer.WithEmitter(a.emitter),
			importer.WithMaxFileSize(a.cfg.MaxUploadBytes),
			importer.WithLogger(utils.ToSlogLogger(a.logger)),
		)
		ctx := cmd.Context()
		if err := wf.SelectFile(ctx, file); err != nil {
			return err
		}
		if err := wf.SelectTarget(testID); err != nil {
			return err
		}

		result, err := wf.Submit(ctx)
		if err != nil {
			return err
		}
		printRowErrors(a.out, result.Errors)
		return nil
	}),
}

var questionsSampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write the import template",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		var write func(io.Writer) error
		switch format {
		case "csv":
			write = importer.SampleCSV
		case "xlsx":
			write = importer.SampleXLSX
			if output == "" {
				output = importer.SampleXLSXName
			}
		default:
			return fmt.Errorf("invalid format %q: want csv or xlsx", format)
		}

		w, err := openOutput(cmd, output)
		if err != nil {
			return err
		}
		if err := write(w); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	},
}

var questionsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download a test's questions in the import format",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		testID, _ := cmd.Flags().GetString("test")
		output, _ := cmd.Flags().GetString("output")

		w, err := openOutput(cmd, output)
		if err != nil {
			return err
		}
		if err := a.services.Questions().ExportCSV(cmd.Context(), testID, w); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	}),
}

// previewFile checks a CSV or XLSX file locally without uploading it.
func previewFile(w io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var report *importer.PreviewReport
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		report, err = importer.PreviewXLSX(f)
	} else {
		report, err = importer.Preview(f)
	}
	if err != nil {
		return err
	}

	byType := report.ByType()
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, string(t))
	}
	sort.Strings(types)

	fmt.Fprintf(w, "%d rows\n", len(report.Rows))
	for _, t := range types {
		fmt.Fprintf(w, "  %-8s %d\n", t, byType[models.QuestionType(t)])
	}
	printRowErrors(w, report.Issues)
	if !report.Valid() {
		return fmt.Errorf("%d problems found", len(report.Issues))
	}
	return nil
}

func printRowErrors(w io.Writer, rowErrors []models.ImportRowError) {
	if len(rowErrors) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%-5s  %-16s  %s\n", "Row", "Column", "Problem")
	fmt.Fprintln(w, strings.Repeat(rule, 70))
	for _, e := range rowErrors {
		fmt.Fprintf(w, "%-5d  %-16s  %s\n", e.Row, e.Column, e.Message)
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput is stdout for "" and "-", otherwise a new file.
func openOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

func init() {
	questionsImportCmd.Flags().String("test", "", "Target test id")
	questionsImportCmd.Flags().Bool("dry-run", false, "Check the file locally and do not upload")

	questionsSampleCmd.Flags().String("format", "csv", "csv or xlsx")
	questionsSampleCmd.Flags().StringP("output", "o", "", "Output file (stdout when empty)")

	questionsExportCmd.Flags().String("test", "", "Test id")
	questionsExportCmd.Flags().StringP("output", "o", "", "Output file (stdout when empty)")
	_ = questionsExportCmd.MarkFlagRequired("test")

	questionsCmd.AddCommand(questionsImportCmd, questionsSampleCmd, questionsExportCmd)
}
