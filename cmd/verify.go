package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/kiwi-machine/assetgen/internal/archive"
	"github.com/kiwi-machine/assetgen/internal/ui"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <archive.pak>",
	Short: "Check an archive against its index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := initLogger(nil); err != nil {
			return err
		}
		return runVerify(args[0])
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(path string) error {
	idx, err := archive.Verify(path)
	if err != nil {
		ui.PrintError("Verify", err.Error())
		return err
	}

	ui.PrintHeader(fmt.Sprintf("Package %s (%s)", idx.Package, idx.ID))
	var total uint64
	for _, e := range idx.Entries {
		total += uint64(e.Size)
		digest := e.DigestHex()
		if len(digest) > 16 {
			digest = digest[:16]
		}
		ui.PrintSuccess(e.Name, humanize.Bytes(uint64(e.Size))+"  blake3:"+digest)
	}
	ui.PrintInfo("Total", fmt.Sprintf("%d entries, %s", len(idx.Entries), humanize.Bytes(total)))
	return nil
}
