package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kiwi-machine/assetgen/internal/config"
	"github.com/kiwi-machine/assetgen/internal/templates"
	"github.com/kiwi-machine/assetgen/internal/ui"
)

var force bool

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default assetgen.yaml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(settings.GetString("config"), force)
	},
}

func init() {
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing project file")
	rootCmd.AddCommand(initCmd)
}

// runInit writes the project file at path, filled with the default layout.
func runInit(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	var cfg config.Config
	config.ApplyDefaults(&cfg)
	if err := generateFileFromTemplate("assetgen.yaml.tmpl", path, &cfg); err != nil {
		return err
	}

	ui.PrintSuccess("Created", path)
	fmt.Fprintln(ui.Out, "Next steps:")
	fmt.Fprintln(ui.Out, "  assetgen doctor    # (Check the asset roots)")
	fmt.Fprintln(ui.Out, "  assetgen generate  # (Generate every asset kind)")
	return nil
}

// generateFileFromTemplate creates a file at destPath using the specified template and data.
func generateFileFromTemplate(tmplName, destPath string, data interface{}) error {
	t, err := templates.Parse(tmplName, nil)
	if err != nil {
		return err
	}
	f, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := t.Execute(f, data); err != nil {
		return err
	}
	return f.Close()
}
