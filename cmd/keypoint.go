package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var keypointCmd = &cobra.Command{
	Use:   "keypoint",
	Short: "Manage daily keypoints",
}

var keypointSaveCmd = &cobra.Command{
	Use:   "save [file]",
	Short: "Validate and store a keypoint JSON payload (file or stdin)",
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
		if err := svc.SaveKeypoint(date, raw); err != nil {
			return err
		}
		fmt.Printf("keypoint saved for %s\n", date)
		return nil
	},
}

var keypointShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored keypoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		raw, err := svc.Keypoint(dateOrToday(cmd, svc))
		if err != nil {
			return err
		}
		fmt.Println(strings.TrimRight(string(raw), "\n"))
		return nil
	},
}

var keypointExcludedCmd = &cobra.Command{
	Use:   "excluded",
	Short: "List topic fingerprints a generator must avoid",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		_, prompt, err := svc.ExcludedTopics(dateOrToday(cmd, svc))
		if err != nil {
			return err
		}
		fmt.Println(prompt)
		return nil
	},
}

// readPayload reads JSON from the named file, or stdin when no file (or
// "-") is given.
func readPayload(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

// dateOrToday resolves the --date flag, defaulting to today in the
// user's timezone.
func dateOrToday(cmd *cobra.Command, svc interface{ Today() string }) string {
	if v, _ := cmd.Flags().GetString("date"); v != "" {
		return v
	}
	return svc.Today()
}

func init() {
	for _, c := range []*cobra.Command{keypointSaveCmd, keypointShowCmd, keypointExcludedCmd} {
		c.Flags().String("date", "", "Date (YYYY-MM-DD, default today)")
		keypointCmd.AddCommand(c)
	}
}
