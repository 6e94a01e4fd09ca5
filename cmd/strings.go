package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kiwi-machine/assetgen/internal/generator"
	"github.com/kiwi-machine/assetgen/internal/ui"
)

var stringsCmd = &cobra.Command{
	Use:   "strings <output_dir>",
	Short: "Compile localized string tables",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		ui.PrintHeader("Generating string resources")
		res, err := generator.GenerateStrings(cfg.Strings, args[0], generator.Options{Logger: logger})
		if err != nil {
			return err
		}
		report(res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stringsCmd)
}
