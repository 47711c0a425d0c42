package cmd

import (
	"fmt"

	"github.com/abhisek/lingua/internal/gamify"
	"github.com/spf13/cobra"
)

var buyCmd = &cobra.Command{
	Use:   "buy <streak_freeze|hint>",
	Short: "Spend gems on a consumable item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item := gamify.GemItem(args[0])
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		st, err := svc.Buy(item)
		if err != nil {
			return err
		}
		fmt.Printf("bought %s for %d gems (%d remaining)\n",
			item, gamify.ItemCost(item), st.User.Gems)
		if item == gamify.ItemStreakFreeze {
			fmt.Printf("streak freezes: %d\n", st.User.StreakFreeze)
		}
		return nil
	},
}
