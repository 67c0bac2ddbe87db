package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lyngdoh/curiouskids/internal/games"
	"github.com/lyngdoh/curiouskids/internal/media"
	"github.com/lyngdoh/curiouskids/internal/prompt"
)

var identifyCmd = &cobra.Command{
	Use:   "identify <image>",
	Short: "Name the main object in a picture",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		say, _ := cmd.Flags().GetBool("say")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()
		if err := d.requireProvider(); err != nil {
			return err
		}

		img, err := media.LoadImage(args[0], d.cfg.ImageMaxDimension)
		if err != nil {
			return err
		}

		ident := games.NewIdentifier(d.provider, d.gameOptions()...)
		defer ident.Close()

		ident.Identify(img)
		ident.Wait()

		switch s := ident.State().(type) {
		case prompt.Success:
			fmt.Fprintln(cmd.OutOrStdout(), s.OutputText)
			if say {
				if err := d.speaker.Speak(cmd.Context(), s.OutputText, true); err != nil {
					return err
				}
				d.waitSpeech()
			}
		case prompt.Error:
			return errors.New(s.Message)
		}
		return nil
	},
}

func init() {
	identifyCmd.Flags().Bool("say", false, "Say the name aloud")
}
