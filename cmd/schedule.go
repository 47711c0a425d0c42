package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "View or change the reminder schedule",
}

var scheduleGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		st, err := svc.State()
		if err != nil {
			return err
		}
		fmt.Printf("keypoint  %s\nquiz      %s\ntimezone  %s\n",
			st.Schedule.KeypointTime, st.Schedule.QuizTime, st.Schedule.Timezone)
		return nil
	},
}

var scheduleSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the schedule (unset flags keep their current values)",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		st, err := svc.State()
		if err != nil {
			return err
		}
		sched := st.Schedule

		if v, _ := cmd.Flags().GetString("keypoint"); v != "" {
			sched.KeypointTime = v
		}
		if v, _ := cmd.Flags().GetString("quiz"); v != "" {
			sched.QuizTime = v
		}
		if v, _ := cmd.Flags().GetString("timezone"); v != "" {
			sched.Timezone = v
		}

		if err := svc.UpdateSchedule(sched); err != nil {
			return err
		}
		fmt.Println("schedule updated")
		return nil
	},
}

func init() {
	scheduleSetCmd.Flags().String("keypoint", "", "Keypoint reminder time (HH:MM)")
	scheduleSetCmd.Flags().String("quiz", "", "Quiz reminder time (HH:MM, after keypoint)")
	scheduleSetCmd.Flags().String("timezone", "", "IANA timezone name")

	scheduleCmd.AddCommand(scheduleGetCmd)
	scheduleCmd.AddCommand(scheduleSetCmd)
}
