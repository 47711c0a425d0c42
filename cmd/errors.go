package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var errorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "Browse the error notebook",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		perPage, _ := cmd.Flags().GetInt("per-page")
		month, _ := cmd.Flags().GetString("month")
		random, _ := cmd.Flags().GetBool("random")

		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		p, err := svc.ListErrors(page, perPage, month, random)
		if err != nil {
			return err
		}

		if p.Total == 0 {
			fmt.Println("The error notebook is empty. Nice work!")
			return nil
		}

		for i, e := range p.Errors {
			status := "✗ unreviewed"
			if e.Reviewed {
				status = "✓ reviewed"
			}
			fmt.Printf("%d. [%s] %s (missed %d×, %s)\n", i+1, e.Date, e.Question, e.WrongCount, status)
			fmt.Printf("   your answer: %s\n", e.UserAnswer)
			fmt.Printf("   correct:     %s\n", e.CorrectAnswer)
			if e.Explanation != "" {
				fmt.Printf("   note:        %s\n", e.Explanation)
			}
		}

		if !random && p.TotalPages > 1 {
			fmt.Printf("\npage %d of %d (%d entries)\n", p.Page, p.TotalPages, p.Total)
		}
		return nil
	},
}

var errorsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the error notebook",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		st, err := svc.ErrorStats()
		if err != nil {
			return err
		}
		fmt.Printf("total: %d   reviewed: %d   unreviewed: %d\n", st.Total, st.Reviewed, st.Unreviewed)
		for month, n := range st.ByMonth {
			fmt.Printf("  %s: %d\n", month, n)
		}
		return nil
	},
}

var errorsArchiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive stale entries (missed 3+ times, 30+ days old)",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		n, err := svc.ArchiveStaleErrors()
		if err != nil {
			return err
		}
		fmt.Printf("archived %d entries\n", n)
		return nil
	},
}

var errorsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Archive all reviewed entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		n, err := svc.ClearReviewedErrors()
		if err != nil {
			return err
		}
		fmt.Printf("cleared %d reviewed entries\n", n)
		return nil
	},
}

func init() {
	errorsCmd.Flags().Int("page", 1, "Page number")
	errorsCmd.Flags().Int("per-page", 5, "Entries per page")
	errorsCmd.Flags().String("month", "", "Filter by month (YYYY-MM)")
	errorsCmd.Flags().Bool("random", false, "Show a random sample of unreviewed entries")

	errorsCmd.AddCommand(errorsStatsCmd)
	errorsCmd.AddCommand(errorsArchiveCmd)
	errorsCmd.AddCommand(errorsClearCmd)
}
