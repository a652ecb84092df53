package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"resume-builder/internal/export"
	"resume-builder/internal/resume"
)

var (
	resumeStore *resume.Store
	pdfExporter *export.Service
)

var errNotConfigured = errors.New("resume store not configured")

var rootCmd = &cobra.Command{
	Use:   "resumectl",
	Short: "Edit and export the resume document",
	Long: `resumectl works on the same stored resume document as the API server.
It reads STORE_BACKEND and the related settings from the environment.`,
	SilenceUsage: true,
}

// Configure sets the store and exporter the commands operate on.
func Configure(store *resume.Store, exporter *export.Service) {
	resumeStore = store
	pdfExporter = exporter
}

// Execute runs the root command. Command output goes to stdout, errors and
// usage to stderr.
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)
	return rootCmd.Execute()
}

func requireStore() (*resume.Store, error) {
	if resumeStore == nil {
		return nil, errNotConfigured
	}
	return resumeStore, nil
}
