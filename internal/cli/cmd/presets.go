package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vidsqueeze/internal/settings"
	"vidsqueeze/internal/util/media"
)

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "presets",
		Short:         "List quality presets, codecs, and supported formats",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "Quality presets:")
			for _, name := range settings.Qualities() {
				p, _ := settings.LookupQuality(name)
				fmt.Fprintf(out, "  %-8s CRF %-3d speed %-8s %s\n",
					p.Name, p.CRF, p.Speed, p.Description)
			}

			fmt.Fprintln(out, "\nCodecs:")
			for _, id := range settings.Codecs() {
				c, _ := settings.LookupCodec(id)
				fmt.Fprintf(out, "  %-8s %-12s %s\n", c.ID, c.Name, c.Description)
			}

			fmt.Fprintln(out, "\nSupported input formats:")
			for _, ext := range media.SupportedExtensions() {
				fmt.Fprintf(out, "  %s\n", ext)
			}
			return nil
		},
	}
}
