package cmd

import (
	"github.com/kiwi-machine/assetgen/internal/generator"
	"github.com/kiwi-machine/assetgen/internal/ui"
)

// report prints the trace of one pipeline run.
func report(res generator.Result) {
	if res.Unchanged {
		ui.PrintInfo(res.Kind, "not changed, skipping")
		return
	}
	ui.PrintGenerated(res.Generated)
	ui.PrintSuccess(res.Kind, "done")
}
