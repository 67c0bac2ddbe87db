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

var askCmd = &cobra.Command{
	Use:   "ask <prompt...>",
	Short: "Send one prompt (optionally with an image) and print the result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		imagePath, _ := cmd.Flags().GetString("image")
		firstLine, _ := cmd.Flags().GetBool("first-line")
		showStates, _ := cmd.Flags().GetBool("states")

		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()
		if err := d.requireProvider(); err != nil {
			return err
		}

		var img *prompt.Image
		if imagePath != "" {
			if img, err = media.LoadImage(imagePath, d.cfg.ImageMaxDimension); err != nil {
				return err
			}
		}

		opts := []prompt.Option{
			prompt.WithLogger(d.log),
			prompt.WithPurpose("ask"),
			prompt.WithTimeout(d.cfg.LLM.Timeout),
		}
		if firstLine {
			opts = append(opts, prompt.WithTransform(games.FirstLine))
		}
		ctrl := prompt.New(d.provider, opts...)
		defer ctrl.Close()

		errOut := cmd.ErrOrStderr()
		if showStates {
			ctrl.Subscribe(func(s prompt.State) {
				fmt.Fprintln(errOut, "state:", s.Kind())
			})
		}

		ctrl.SendPrompt(img, strings.Join(args, " "))
		ctrl.Wait()

		switch s := ctrl.State().(type) {
		case prompt.Success:
			fmt.Fprintln(cmd.OutOrStdout(), s.OutputText)
		case prompt.Error:
			return errors.New(s.Message)
		}
		return nil
	},
}

func init() {
	askCmd.Flags().String("image", "", "Picture to send along with the prompt")
	askCmd.Flags().Bool("first-line", false, "Keep only the first line of the answer")
	askCmd.Flags().Bool("states", false, "Print each view state transition to stderr")
}
