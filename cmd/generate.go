package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kiwi-machine/assetgen/internal/generator"
	"github.com/kiwi-machine/assetgen/internal/ui"
)

var (
	// modeOverride forces one mode on every binary kind. Set via --mode.
	modeOverride string
	wasm         bool
)

// generateCmd represents the generate command.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run every asset kind configured in assetgen.yaml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	generateCmd.Flags().StringVar(&modeOverride, "mode", "", "override the configured mode of every kind (embedded, external)")
	generateCmd.Flags().BoolVar(&wasm, "wasm", false, "apply each root's ignore list")
	rootCmd.AddCommand(generateCmd)
}

// runGenerate loads the project file and runs each configured kind into its
// configured output directory.
func runGenerate(cmd *cobra.Command) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	var mode *generator.Mode
	if modeOverride != "" {
		m, err := generator.ParseMode(modeOverride)
		if err != nil {
			return err
		}
		mode = &m
	}

	ui.PrintHeader("Generating assets")
	results, err := generator.Generate(cfg, mode, generator.Options{Logger: logger, Wasm: wasm})
	for _, res := range results {
		report(res)
	}
	return err
}
