package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kiwi-machine/assetgen/internal/generator"
	"github.com/kiwi-machine/assetgen/internal/ui"
)

// romsCmd takes positional arguments like the build scripts it replaces:
// a mode flag of "OFF" selects external archives, a wasm flag of "ON"
// applies the root's ignore list.
var romsCmd = &cobra.Command{
	Use:   "roms <output_dir> [mode_flag] [wasm]",
	Short: "Package preset ROMs into C++ sources and archives",
	Args:  cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		mode := generator.Embedded
		if len(args) > 1 {
			mode = generator.ModeFromFlag(args[1])
		}
		opts := generator.Options{
			Logger:    logger,
			Languages: cfg.Languages,
			Wasm:      len(args) > 2 && args[2] == "ON",
		}

		ui.PrintHeader("Generating preset ROMs (" + mode.String() + ")")
		res, err := generator.GenerateRoms(cfg.Roms, args[0], mode, opts)
		if err != nil {
			return err
		}
		report(res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(romsCmd)
}
