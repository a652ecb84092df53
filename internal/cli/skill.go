package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"resume-builder/internal/resume"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Manage skills",
	Long:  `Add or remove entries in the technical, soft, languages and certifications categories.`,
}

var skillAddCmd = &cobra.Command{
	Use:   "add [category] [value]",
	Short: "Add a skill to a category",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runSkillAdd,
}

var skillRemoveCmd = &cobra.Command{
	Use:   "remove [category] [index]",
	Short: "Remove the skill at a zero-based position",
	Args:  cobra.ExactArgs(2),
	RunE:  runSkillRemove,
}

var skillListCmd = &cobra.Command{
	Use:   "list",
	Short: "List skills by category",
	Args:  cobra.NoArgs,
	RunE:  runSkillList,
}

func init() {
	skillCmd.AddCommand(skillAddCmd)
	skillCmd.AddCommand(skillRemoveCmd)
	skillCmd.AddCommand(skillListCmd)
	rootCmd.AddCommand(skillCmd)
}

func runSkillAdd(cmd *cobra.Command, args []string) error {
	store, err := requireStore()
	if err != nil {
		return err
	}
	category := args[0]
	value := strings.TrimSpace(strings.Join(args[1:], " "))
	doc, err := store.AddSkill(cmd.Context(), category, value)
	if err != nil {
		return fmt.Errorf("add skill: %w", err)
	}
	if value == "" {
		cmd.Println("Nothing to add")
		return nil
	}
	list, _ := doc.Skills.Category(category)
	cmd.Printf("Added %q to %s (%d total)\n", value, category, len(*list))
	return nil
}

func runSkillRemove(cmd *cobra.Command, args []string) error {
	store, err := requireStore()
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("index must be an integer: %q", args[1])
	}
	doc, err := store.RemoveSkillAt(cmd.Context(), args[0], index)
	if err != nil {
		return fmt.Errorf("remove skill: %w", err)
	}
	list, _ := doc.Skills.Category(args[0])
	cmd.Printf("%s now has %d skills\n", args[0], len(*list))
	return nil
}

func runSkillList(cmd *cobra.Command, _ []string) error {
	store, err := requireStore()
	if err != nil {
		return err
	}
	doc := store.Document()
	for _, name := range resume.SkillCategories {
		list, _ := doc.Skills.Category(name)
		if len(*list) == 0 {
			continue
		}
		cmd.Printf("%s:\n", name)
		for i, skill := range *list {
			cmd.Printf("  %d. %s\n", i, skill)
		}
	}
	return nil
}
