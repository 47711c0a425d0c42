package cmd

import (
	"fmt"

	"github.com/abhisek/lingua/internal/screens/review"
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Start an interactive error-review session",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		svc, err := newService(cmd)
		if err != nil {
			return err
		}

		entries, err := svc.ReviewCandidates(limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No unreviewed errors. Nothing to do!")
			return nil
		}

		st, err := svc.State()
		if err != nil {
			return err
		}

		return review.Run(entries, st.User.Gems, st.User.Streak, svc.MarkReviewed)
	},
}

func init() {
	reviewCmd.Flags().Int("limit", 10, "Maximum entries per session")
}
