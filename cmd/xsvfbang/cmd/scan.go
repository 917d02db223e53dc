package cmd

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/xsvfbang/pkg/engine"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Enumerate the devices in the JTAG chain",
	Long: `Reset the TAP and shift out the IDCODEs of every device in the chain.
Each device is printed with its decoded revision, part number and
manufacturer.

Example:
  xsvfbang scan
  xsvfbang --transport sim scan`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	// Scan mode consumes no input bytes.
	return runEngine(cmd, bufio.NewReader(strings.NewReader("")), engine.ModeScan)
}
