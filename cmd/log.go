package cmd

import (
	"fmt"
	"time"

	"github.com/abhisek/lingua/internal/store"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "List audit-log events for a month",
	RunE: func(cmd *cobra.Command, args []string) error {
		month, _ := cmd.Flags().GetString("month")
		if month == "" {
			month = time.Now().Format("2006-01")
		}
		typeFilter, _ := cmd.Flags().GetString("type")

		dir, err := resolveDataDir(cmd)
		if err != nil {
			return err
		}
		s, err := store.Open(dir)
		if err != nil {
			return err
		}

		events, err := s.ReadEvents(month)
		if err != nil {
			return err
		}

		shown := 0
		for _, e := range events {
			if typeFilter != "" && string(e.Type) != typeFilter {
				continue
			}
			fmt.Printf("%s  %-20s  %v\n",
				e.Timestamp.Format(time.RFC3339), e.Type, e.Data)
			shown++
		}
		fmt.Printf("\n%d events\n", shown)
		return nil
	},
}

func init() {
	logCmd.Flags().String("month", "", "Month to read (YYYY-MM, default current)")
	logCmd.Flags().String("type", "", "Filter by event type")
}
