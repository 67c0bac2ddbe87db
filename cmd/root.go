package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lyngdoh/curiouskids/internal/config"
	"github.com/lyngdoh/curiouskids/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "curiouskids",
	Short: "AI learning games for kids",
	Long: "Curious Kids: math questions, a spelling bee, stories and picture naming, " +
		"all generated by an LLM.\n\n" +
		"Set GEMINI_API_KEY (or OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY) to play.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CURIOUSKIDS_DB env var)")

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(storyCmd)
	rootCmd.AddCommand(identifyCmd)
	rootCmd.AddCommand(transcribeCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPathWith returns the database path using --db flag (highest
// priority), then the configured path, then the default XDG path.
func resolveDBPathWith(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
