package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/lyngdoh/curiouskids/internal/config"
	"github.com/lyngdoh/curiouskids/internal/llm"
)

// version is set via -ldflags at build time.
var version = "(devel)"

const modulePath = "github.com/lyngdoh/curiouskids"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version, build and model details",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		v, module := buildVersion()
		fmt.Fprintln(out, "curiouskids", v)
		fmt.Fprintln(out, "module:", module)
		fmt.Fprintln(out, "go:", runtime.Version())
		if cfg, err := config.Load(); err == nil {
			fmt.Fprintln(out, "model:", describeModel(cfg.LLM))
		}
	},
}

// buildVersion prefers the -ldflags version and falls back to the module
// version recorded by `go install`.
func buildVersion() (string, string) {
	v, module := version, modulePath
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v, module
	}
	if info.Main.Path != "" {
		module = info.Main.Path
	}
	if v == "(devel)" && info.Main.Version != "" {
		v = info.Main.Version
	}
	return v, module
}

func describeModel(cfg llm.Config) string {
	var model string
	switch cfg.Provider {
	case "gemini":
		model = cfg.Gemini.Model
	case "openai":
		model = cfg.OpenAI.Model
	case "anthropic":
		model = cfg.Anthropic.Model
	case "openrouter":
		model = cfg.OpenRouter.Model
	}
	if model == "" {
		return cfg.Provider
	}
	return fmt.Sprintf("%s (%s)", cfg.Provider, model)
}
