package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/lingua/internal/scorer"
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Manage daily quizzes",
}

var quizSaveCmd = &cobra.Command{
	Use:   "save [file]",
	Short: "Validate and store a quiz JSON payload (file or stdin)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readPayload(args)
		if err != nil {
			return err
		}
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		date := dateOrToday(cmd, svc)
		if err := svc.SaveQuiz(date, raw); err != nil {
			return err
		}
		fmt.Printf("quiz saved for %s\n", date)
		return nil
	},
}

var quizShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored quiz",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		raw, err := svc.Quiz(dateOrToday(cmd, svc))
		if err != nil {
			return err
		}
		fmt.Println(strings.TrimRight(string(raw), "\n"))
		return nil
	},
}

var quizSubmitCmd = &cobra.Command{
	Use:   "submit [file]",
	Short: "Grade an answer sheet and apply progression",
	Long: `Reads an answers JSON object ({"question_id": "answer", ...}) from the
named file or stdin, grades it against the stored quiz, and applies the
full progression update: streak, XP, level, gems, badges, and the error
notebook.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readPayload(args)
		if err != nil {
			return err
		}
		var answers scorer.Answers
		if err := json.Unmarshal(raw, &answers); err != nil {
			return fmt.Errorf("decode answers: %w", err)
		}

		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		date := dateOrToday(cmd, svc)

		if err := svc.SubmitAnswers(date, answers); err != nil {
			return err
		}
		out, err := svc.CompleteQuiz(date, answers)
		if err != nil {
			return err
		}

		r := out.Result
		fmt.Printf("%d/%d correct (%.1f%%)", r.CorrectCount, r.TotalQuestions, r.Accuracy)
		if r.Perfect {
			fmt.Print("  PERFECT!")
		} else if r.Passed {
			fmt.Print("  passed")
		}
		fmt.Println()
		fmt.Printf("+%d XP (base %d, ×%.2f streak bonus %d",
			r.TotalXP, r.BaseXP, r.StreakMultiplier, r.BonusXP)
		if r.PerfectBonus > 0 {
			fmt.Printf(", perfect bonus %d", r.PerfectBonus)
		}
		fmt.Println(")")
		fmt.Printf("streak: %d days", out.Streak.Streak)
		if out.Streak.FreezeUsed {
			fmt.Print("  (freeze used)")
		}
		fmt.Println()
		if out.LeveledUp {
			fmt.Printf("LEVEL UP! Now level %d\n", out.NewLevel)
		}
		for _, b := range out.BadgesEarned {
			fmt.Printf("badge earned: %s %s (+%d gems)\n", b.Icon, b.Name, b.Gems)
		}
		if out.GemsEarned > 0 {
			fmt.Printf("+%d gems\n", out.GemsEarned)
		}
		if r.WrongCount > 0 {
			fmt.Printf("%d missed answers added to the error notebook\n", r.WrongCount)
		}
		return nil
	},
}

var quizResultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Print the stored grading result",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		raw, err := svc.Results(dateOrToday(cmd, svc))
		if err != nil {
			return err
		}
		fmt.Println(strings.TrimRight(string(raw), "\n"))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{quizSaveCmd, quizShowCmd, quizSubmitCmd, quizResultsCmd} {
		c.Flags().String("date", "", "Date (YYYY-MM-DD, default today)")
		quizCmd.AddCommand(c)
	}
}
