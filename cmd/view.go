package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Record that today's keypoint was viewed",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		date := dateOrToday(cmd, svc)
		if err := svc.RecordView(date); err != nil {
			return err
		}
		fmt.Printf("view recorded for %s\n", date)
		return nil
	},
}

func init() {
	viewCmd.Flags().String("date", "", "Date (YYYY-MM-DD, default today)")
}
