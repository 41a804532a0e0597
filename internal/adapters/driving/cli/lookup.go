package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arara-labs/gradsearch/internal/core/domain"
)

var lookupType string

var lookupCmd = &cobra.Command{
	Use:   "lookup [code]",
	Short: "Show one catalog record",
	Long: `Shows the full catalog record behind a code.
Five-character codes (MC102, "F 128") are subjects; anything else is
looked up as a degree program. Use --type to override the guess.`,
	Args: cobra.ExactArgs(1),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().StringVarP(&lookupType, "type", "t", "", "record type (disciplines, courses)")
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	code := args[0]

	dataset := domain.DatasetCourses
	if domain.IsDisciplineCode(code) {
		dataset = domain.DatasetDisciplines
	}
	if lookupType != "" {
		parsed, err := domain.ParseDataset(lookupType)
		if err != nil {
			return err
		}
		dataset = parsed
	}

	ctx := context.Background()

	if dataset == domain.DatasetCourses {
		return lookupCourse(ctx, cmd, code)
	}
	return lookupDiscipline(ctx, cmd, code)
}

func lookupDiscipline(ctx context.Context, cmd *cobra.Command, code string) error {
	discipline, err := searchService.Discipline(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to look up discipline: %w", err)
	}

	cmd.Printf("Discipline: %s\n\n", discipline.Code)
	cmd.Printf("  Name:     %s\n", discipline.Name)

	if len(discipline.Reqs) == 0 {
		cmd.Printf("  Requires: none\n")
	} else {
		for i, group := range discipline.Reqs {
			label := "  Requires:"
			if i > 0 {
				label = "        or:"
			}
			cmd.Printf("%s %s\n", label, formatRequirementGroup(group))
		}
	}

	requiredBy, err := searchService.RequiredBy(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to look up dependents: %w", err)
	}
	if requiredBy.Len() > 0 {
		cmd.Printf("\n  Required by: %s\n", strings.Join(requiredBy.Values(), ", "))
	}

	return nil
}

func lookupCourse(ctx context.Context, cmd *cobra.Command, code string) error {
	course, err := searchService.Course(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to look up course: %w", err)
	}

	cmd.Printf("Course: %s\n\n", course.Code)
	cmd.Printf("  Name:      %s\n", course.Name)
	cmd.Printf("  Semesters: %d\n", course.Semesters())

	if len(course.Variants) > 0 {
		for _, variant := range course.Variants {
			cmd.Printf("\n  Variant %s:\n", variant.Name)
			printCurriculum(cmd, variant.Tree)
		}
		return nil
	}

	cmd.Println("\n  Curriculum:")
	printCurriculum(cmd, course.Tree)
	return nil
}

func printCurriculum(cmd *cobra.Command, tree []domain.CodeSet) {
	for i, semester := range tree {
		cmd.Printf("    %2d. %s\n", i+1, strings.Join(semester.Values(), ", "))
	}
}

// formatRequirementGroup renders one conjunctive prerequisite group.
// Partial credit is marked with a leading star, special requirements
// with a trailing note, matching the catalog's own notation.
func formatRequirementGroup(group domain.RequirementGroup) string {
	parts := make([]string, len(group))
	for i, req := range group {
		code := req.Code
		if req.Partial {
			code = "*" + code
		}
		if req.Special {
			code += " (special)"
		}
		parts[i] = code
	}
	return strings.Join(parts, " + ")
}
