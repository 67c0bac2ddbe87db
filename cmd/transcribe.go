package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lyngdoh/curiouskids/internal/media"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio-file>",
	Short: "Print the best transcript of a recording",
	Long:  "Print the best transcript of a recording. Nothing is printed when no speech is recognised.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, false)
		if err != nil {
			return err
		}
		defer d.Close()

		t, err := d.openTranscriber(cmd.Context())
		if err != nil {
			return err
		}
		text, err := media.TranscribeFile(cmd.Context(), t, args[0])
		if err != nil {
			return err
		}
		if text != "" {
			fmt.Fprintln(cmd.OutOrStdout(), text)
		}
		return nil
	},
}
