package cmd

import (
	"github.com/abhisek/lingua/internal/app"
	"github.com/abhisek/lingua/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lingua",
	Short: "Daily English tutor state and progress tracker",
	Long:  "Lingua — tracks daily keypoints, quizzes, streaks, XP and the error notebook for an English tutor.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Path to the data directory (overrides LINGUA_STATE_DIR env var)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(errorsCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(keypointCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDataDir returns the data directory using --data (highest
// priority), then LINGUA_STATE_DIR, then the default XDG path.
func resolveDataDir(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("data"); p != "" {
		return p, nil
	}
	return store.DefaultDataDir()
}

// newService opens the store and wraps it in the application service.
func newService(cmd *cobra.Command) (*app.Service, error) {
	dir, err := resolveDataDir(cmd)
	if err != nil {
		return nil, err
	}
	s, err := store.Open(dir)
	if err != nil {
		return nil, err
	}
	return app.New(s), nil
}
