package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"resume-builder/internal/resume"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resume document",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default document",
	Long:  `Discards every section, deletes the stored document and starts over from the defaults.`,
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

var templateCmd = &cobra.Command{
	Use:   "template [name]",
	Short: "Select the visual template (modern, classic, creative)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplate,
}

var schemeCmd = &cobra.Command{
	Use:   "scheme [id]",
	Short: "Apply a color scheme preset",
	Args:  cobra.ExactArgs(1),
	RunE:  runScheme,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the full document as JSON")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(schemeCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	store, err := requireStore()
	if err != nil {
		return err
	}
	doc := store.Document()
	if showJSON {
		raw, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		return nil
	}

	name := doc.Personal.FullName()
	if name == "" {
		name = "(no name)"
	}
	cmd.Printf("Name:       %s\n", name)
	if doc.Personal.Email != "" {
		cmd.Printf("Email:      %s\n", doc.Personal.Email)
	}
	cmd.Printf("Template:   %s (%s)\n", doc.Template.Name, doc.Template.Layout)
	cmd.Printf("Experience: %d\n", len(doc.Experience))
	cmd.Printf("Education:  %d\n", len(doc.Education))
	cmd.Printf("Projects:   %d\n", len(doc.Projects))
	cmd.Printf("Skills:     %d\n", doc.Skills.Total())
	return nil
}

func runStats(cmd *cobra.Command, _ []string) error {
	store, err := requireStore()
	if err != nil {
		return err
	}
	st := store.Stats()
	cmd.Printf("Completion: %d%%\n\n", st.CompletionPercentage)
	cmd.Printf("  personal    %5.1f\n", st.Sections.Personal)
	cmd.Printf("  experience  %5.1f\n", st.Sections.Experience)
	cmd.Printf("  education   %5.1f\n", st.Sections.Education)
	cmd.Printf("  skills      %5.1f\n", st.Sections.Skills)
	cmd.Printf("  projects    %5.1f\n", st.Sections.Projects)
	return nil
}

func runReset(cmd *cobra.Command, _ []string) error {
	store, err := requireStore()
	if err != nil {
		return err
	}
	store.Reset(cmd.Context())
	cmd.Println("Resume reset to defaults")
	return nil
}

func runTemplate(cmd *cobra.Command, args []string) error {
	store, err := requireStore()
	if err != nil {
		return err
	}
	doc, err := store.SelectTemplate(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("select template: %w", err)
	}
	cmd.Printf("Template set to %s (%s)\n", doc.Template.Name, doc.Template.Layout)
	return nil
}

func runScheme(cmd *cobra.Command, args []string) error {
	store, err := requireStore()
	if err != nil {
		return err
	}
	if _, err := store.ApplyColorScheme(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("apply color scheme: %w", err)
	}
	scheme, _ := resume.LookupColorScheme(args[0])
	cmd.Printf("Color scheme set to %s\n", scheme.Name)
	return nil
}
