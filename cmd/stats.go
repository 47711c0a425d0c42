package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lingua/internal/ui/theme"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		sum, err := svc.Summarize()
		if err != nil {
			return err
		}

		var b strings.Builder

		title := fmt.Sprintf("Level %d · %s", sum.Level, sum.LevelName)
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(title))
		b.WriteString("\n\n")

		if sum.XPToNext > 0 {
			b.WriteString(fmt.Sprintf("XP        %d  (%d into level, %d to next)\n",
				sum.XP, sum.XPIntoLevel, sum.XPToNext))
		} else {
			b.WriteString(fmt.Sprintf("XP        %d  (max level)\n", sum.XP))
		}
		b.WriteString(fmt.Sprintf("Streak    %d days  (×%.2f multiplier, %d freezes)\n",
			sum.Streak, sum.StreakMultiplier, sum.StreakFreezes))
		b.WriteString(fmt.Sprintf("Gems      %d\n", sum.Gems))
		b.WriteString(fmt.Sprintf("Quizzes   %d  (%.1f%% correct, %d perfect)\n",
			sum.Progress.TotalQuizzes, sum.Progress.CorrectRate, sum.Progress.PerfectQuizzes))
		b.WriteString(fmt.Sprintf("Learned   %d expressions, %d errors cleared\n",
			sum.Progress.ExpressionsLearned, sum.Progress.ErrorsCleared))

		if len(sum.Badges) > 0 {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Badges"))
			b.WriteString("\n")
			for _, badge := range sum.Badges {
				b.WriteString(fmt.Sprintf("  %s %s\n", badge.Icon, badge.Name))
			}
		}

		fmt.Println(theme.Card.Render(strings.TrimRight(b.String(), "\n")))
		return nil
	},
}
