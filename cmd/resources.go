package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kiwi-machine/assetgen/internal/config"
	"github.com/kiwi-machine/assetgen/internal/generator"
	"github.com/kiwi-machine/assetgen/internal/ui"
)

// newResourceCmd builds the command of a binary resource kind. The mode
// comes from the kind's section of the project file.
func newResourceCmd(kind string) *cobra.Command {
	return &cobra.Command{
		Use:   kind + " <output_dir> [wasm]",
		Short: "Generate " + kind + " resource accessors",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			sec, err := cfg.Section(kind)
			if err != nil {
				return err
			}
			mode, err := generator.ParseMode(sec.Mode)
			if err != nil {
				return err
			}
			opts := generator.Options{
				Logger: logger,
				Wasm:   len(args) > 1 && args[1] == "ON",
			}

			ui.PrintHeader("Generating " + kind + " resources (" + mode.String() + ")")
			res, err := generator.GenerateResources(kind, *sec, args[0], mode, opts)
			if err != nil {
				return err
			}
			report(res)
			return nil
		},
	}
}

func init() {
	for _, kind := range []string{config.KindAudio, config.KindFonts, config.KindImages} {
		rootCmd.AddCommand(newResourceCmd(kind))
	}
}
