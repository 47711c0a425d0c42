package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/lingua/internal/state"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or change learning preferences",
}

var configGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print current preferences as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		st, err := svc.State()
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(st.Preferences, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update preferences (unset flags keep their current values)",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd)
		if err != nil {
			return err
		}
		st, err := svc.State()
		if err != nil {
			return err
		}
		prefs := st.Preferences

		if v, _ := cmd.Flags().GetString("cefr"); v != "" {
			prefs.CEFRLevel = state.CEFRLevel(strings.ToUpper(v))
		}
		if cmd.Flags().Changed("ratio") {
			prefs.OralWrittenRatio, _ = cmd.Flags().GetInt("ratio")
		}
		if v, _ := cmd.Flags().GetString("style"); v != "" {
			prefs.TutorStyle = state.TutorStyle(strings.ToLower(v))
		}
		if cmd.Flags().Changed("dedup-days") {
			prefs.DedupDays, _ = cmd.Flags().GetInt("dedup-days")
		}
		if topics, _ := cmd.Flags().GetStringSlice("topic"); len(topics) > 0 {
			weights, err := parseTopicWeights(topics)
			if err != nil {
				return err
			}
			prefs.Topics = weights
		}
		if cmd.Flags().Changed("tts") {
			prefs.TTS.Enabled, _ = cmd.Flags().GetBool("tts")
		}
		if v, _ := cmd.Flags().GetString("voice"); v != "" {
			prefs.TTS.Voice = v
		}
		if cmd.Flags().Changed("speed") {
			prefs.TTS.Speed, _ = cmd.Flags().GetFloat64("speed")
		}

		if err := svc.UpdatePreferences(prefs); err != nil {
			return err
		}
		fmt.Println("preferences updated")
		return nil
	},
}

// parseTopicWeights parses repeated name=weight pairs.
func parseTopicWeights(pairs []string) (map[string]float64, error) {
	weights := make(map[string]float64, len(pairs))
	for _, p := range pairs {
		name, val, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("topic %q: want name=weight", p)
		}
		w, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("topic %q: %w", p, err)
		}
		weights[name] = w
	}
	return weights, nil
}

func init() {
	configSetCmd.Flags().String("cefr", "", "CEFR level (A1-C2)")
	configSetCmd.Flags().Int("ratio", 0, "Oral/written ratio (0-100)")
	configSetCmd.Flags().String("style", "", "Tutor style (humorous, strict, friendly, academic)")
	configSetCmd.Flags().Int("dedup-days", 0, "Topic deduplication window in days")
	configSetCmd.Flags().StringSlice("topic", nil, "Topic weight as name=weight (repeatable, replaces all)")
	configSetCmd.Flags().Bool("tts", false, "Enable text-to-speech")
	configSetCmd.Flags().String("voice", "", "TTS voice name")
	configSetCmd.Flags().Float64("speed", 0, "TTS speed")

	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
}
