package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kiwi-machine/assetgen/internal/config"
	"github.com/kiwi-machine/assetgen/internal/generator"
	"github.com/kiwi-machine/assetgen/internal/manifest"
	"github.com/kiwi-machine/assetgen/internal/ui"
	"github.com/kiwi-machine/assetgen/internal/walker"
)

// doctorCmd represents the doctor command.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the project file and asset roots without generating",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.PrintHeader("Checking project")
		cfg, _, err := setup(cmd)
		if err != nil {
			ui.PrintError("Config", err.Error())
			return err
		}
		ui.PrintSuccess("Config", settings.GetString("config"))

		if problems := runDoctor(cfg); problems > 0 {
			return fmt.Errorf("doctor found %d problem(s)", problems)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// runDoctor checks every kind and returns the number of problems found.
func runDoctor(cfg *config.Config) int {
	problems := 0
	for _, kind := range config.Kinds {
		sec, _ := cfg.Section(kind)
		if sec.Skip {
			ui.PrintInfo(kind, "skipped")
			continue
		}
		tree, err := walker.Walk(sec.Root, walker.Options{
			Extensions: sec.Extensions,
			Recurse:    kind == config.KindRoms,
			FileList:   sec.FileList,
		})
		if err != nil {
			ui.PrintError(kind, err.Error())
			problems++
			continue
		}
		ui.PrintSuccess(kind, fmt.Sprintf("%s: %d entries in %d collection(s)", sec.Root, tree.Len(), len(tree.Named)+1))

		switch kind {
		case config.KindRoms:
			problems += checkManifests(tree, cfg.Languages)
		case config.KindStrings:
			problems += checkStringTables(tree)
		}
		if kind != config.KindStrings {
			checkIgnoreList(kind, sec)
		}
	}
	return problems
}

func checkManifests(tree *walker.Tree, languages []string) int {
	problems := 0
	for _, col := range tree.Collections() {
		m, err := manifest.Load(col.Dir)
		if err == nil {
			_, _, err = m.ResolveIcons(col.Dir)
		}
		switch {
		case err != nil:
			ui.PrintError("Manifest", err.Error())
			problems++
		case m == nil:
			ui.PrintWarning("Manifest", col.Name+": none, titles fall back to ROM names")
		default:
			ui.PrintSuccess("Manifest", fmt.Sprintf("%s: %d title key(s)", col.Name, len(m.Titles)))
			if extra := unknownLanguages(m.Languages(), languages); len(extra) > 0 {
				ui.PrintWarning("Manifest", fmt.Sprintf("%s: languages %s are not in the Language enumeration", col.Name, strings.Join(extra, ", ")))
			}
		}
	}
	return problems
}

// unknownLanguages returns the codes of used that are missing from configured.
func unknownLanguages(used, configured []string) []string {
	var out []string
	for _, lang := range used {
		if !slices.ContainsFunc(configured, func(c string) bool { return strings.EqualFold(c, lang) }) {
			out = append(out, lang)
		}
	}
	return out
}

func checkStringTables(tree *walker.Tree) int {
	if _, err := generator.BuildStringsPlan(tree, ""); err != nil {
		ui.PrintError("Strings", err.Error())
		return 1
	}
	return 0
}

// checkIgnoreList only warns: the list is needed for wasm builds alone.
func checkIgnoreList(kind string, sec *config.Section) {
	path := filepath.Join(sec.Root, sec.IgnoreList)
	if _, err := os.Stat(path); err != nil {
		ui.PrintWarning(kind, sec.IgnoreList+" missing, wasm builds will fail")
		return
	}
	names, err := walker.LoadIgnoreList(path)
	if err != nil {
		ui.PrintWarning(kind, err.Error())
		return
	}
	ui.PrintInfo(kind, fmt.Sprintf("%s: %d ignored file(s)", sec.IgnoreList, len(names)))
}
