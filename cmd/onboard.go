package cmd

import (
	"fmt"
	"strconv"

	"github.com/abhisek/lingua/internal/state"
	"github.com/spf13/cobra"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard [step]",
	Short: "Show or advance onboarding progress",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			st, err := svc.State()
			if err != nil {
				return err
			}
			printOnboarding(st)
			return nil
		}

		step, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("step must be a number: %w", err)
		}
		st, err := svc.AdvanceOnboarding(step)
		if err != nil {
			return err
		}
		printOnboarding(st)
		return nil
	},
}

func printOnboarding(st *state.UserState) {
	if st.Initialized {
		fmt.Println("onboarding complete")
		return
	}
	fmt.Printf("onboarding step %d of %d\n", st.OnboardingStep, state.MaxOnboardingStep)
}
