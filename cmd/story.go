package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lyngdoh/curiouskids/internal/games"
	"github.com/lyngdoh/curiouskids/internal/media"
	"github.com/lyngdoh/curiouskids/internal/prompt"
)

var storyCmd = &cobra.Command{
	Use:   "story [title...]",
	Short: "Tell a story with a lesson at the end",
	Long: "Tell a story about a title. The title comes from the arguments, from a\n" +
		"recorded question (--voice) or, when neither is given, from the first preset.",
	RunE: func(cmd *cobra.Command, args []string) error {
		voice, _ := cmd.Flags().GetString("voice")
		read, _ := cmd.Flags().GetBool("read")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()
		if err := d.requireProvider(); err != nil {
			return err
		}

		ctx := cmd.Context()
		title := strings.Join(args, " ")
		if voice != "" {
			t, err := d.openTranscriber(ctx)
			if err != nil {
				return err
			}
			if title, err = media.TranscribeFile(ctx, t, voice); err != nil {
				return err
			}
			if strings.TrimSpace(title) == "" {
				return errors.New("no speech recognised in " + voice)
			}
		}
		if strings.TrimSpace(title) == "" {
			title = games.Titles[0]
		}

		teller := games.NewStoryTeller(d.provider, d.gameOptions()...)
		defer teller.Close()

		teller.Tell(title)
		teller.Wait()

		out := cmd.OutOrStdout()
		switch s := teller.State().(type) {
		case prompt.Success:
			fmt.Fprintln(out, teller.Title())
			fmt.Fprintln(out, strings.Repeat("─", len([]rune(teller.Title()))))
			fmt.Fprintln(out, s.OutputText)
		case prompt.Error:
			return errors.New(s.Message)
		}

		if read && teller.ReadAloud(ctx) {
			d.waitSpeech()
		}
		return nil
	},
}

func init() {
	storyCmd.Flags().String("voice", "", "Audio file with the spoken title")
	storyCmd.Flags().Bool("read", false, "Read the story aloud")
}
