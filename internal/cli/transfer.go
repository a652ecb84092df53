package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-builder/internal/export"
	"resume-builder/internal/resume"
)

var (
	exportOutput string
	pdfOutput    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the document as a JSON backup",
	Long:  `Writes resume-data-YYYY-MM-DD.json in the current directory unless -o is given. Use -o - for stdout.`,
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the document with a JSON backup",
	Long:  `Missing sections are filled from the defaults. The current document is kept when the file is invalid.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Export the rendered resume as PDF",
	Long:  `Renders the selected template in headless Chrome. Set CHROME_PATH to pick the browser binary.`,
	Args:  cobra.NoArgs,
	RunE:  runPDF,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file")
	pdfCmd.Flags().StringVarP(&pdfOutput, "output", "o", "", "output file")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(pdfCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	store, err := requireStore()
	if err != nil {
		return err
	}
	name, raw, err := store.ExportJSON()
	if err != nil {
		return fmt.Errorf("export document: %w", err)
	}
	if exportOutput == "-" {
		fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		return nil
	}
	path := exportOutput
	if path == "" {
		path = name
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	cmd.Printf("Exported to %s\n", path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	store, err := requireStore()
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	doc, err := store.ImportJSON(cmd.Context(), raw)
	if err != nil {
		var ierr *resume.ImportError
		if errors.As(err, &ierr) {
			return errors.New(ierr.Message)
		}
		return err
	}
	cmd.Printf("Imported %s (%d%% complete)\n", args[0], resume.CompletionStats(doc).CompletionPercentage)
	return nil
}

func runPDF(cmd *cobra.Command, _ []string) error {
	store, err := requireStore()
	if err != nil {
		return err
	}
	if pdfExporter == nil {
		return errors.New("pdf exporter not configured")
	}
	res, err := pdfExporter.Export(cmd.Context(), store.Document())
	if err != nil {
		if errors.Is(err, export.ErrExportInProgress) {
			return err
		}
		return errors.New(export.FailureNotice)
	}
	path := pdfOutput
	if path == "" {
		path = res.FileName
	}
	if err := os.WriteFile(path, res.PDF, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	cmd.Printf("Wrote %s (%d pages)\n", path, res.Pages)
	return nil
}
