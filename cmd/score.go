package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show or reset saved scores",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reset, _ := cmd.Flags().GetString("reset")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if reset != "" {
			key := scoreKey(reset)
			if err := d.scores.Reset(ctx, key); err != nil {
				return fmt.Errorf("reset %s: %w", key, err)
			}
			fmt.Fprintf(out, "Reset %s.\n", key)
			return nil
		}

		scores, err := d.scores.All(ctx)
		if err != nil {
			return err
		}
		if len(scores) == 0 {
			fmt.Fprintln(out, "No scores yet.")
			return nil
		}

		fmt.Fprintf(out, "%-22s  %6s  %s\n", "Feature", "Score", "Updated")
		fmt.Fprintln(out, strings.Repeat("─", 52))
		for _, s := range scores {
			fmt.Fprintf(out, "%-22s  %6d  %s\n",
				s.Feature, s.Value, s.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

// scoreKey accepts "addition" as well as "addition_score".
func scoreKey(feature string) string {
	feature = strings.ToLower(strings.TrimSpace(feature))
	if strings.HasSuffix(feature, "_score") {
		return feature
	}
	return feature + "_score"
}

func init() {
	scoreCmd.Flags().String("reset", "", "Feature to reset (addition, subtraction, multiplication, division, spelling)")
}
