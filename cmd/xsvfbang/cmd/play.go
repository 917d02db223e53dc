package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/xsvfbang/pkg/engine"
)

var playMode string

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Replay an SVF or XSVF file against the JTAG chain",
	Long: `Play an SVF or XSVF test vector file through the bitbang port.

The mode is inferred from the file extension (.svf or .xsvf) unless
--mode is given. Use "-" to read from stdin (requires --mode).

Examples:
  xsvfbang play firmware.xsvf
  xsvfbang play --mode svf -   < vectors.svf
  xsvfbang -vv -L play test.svf`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVarP(&playMode, "mode", "m", "",
		"vector format (svf, xsvf); inferred from extension when empty")
}

func runPlay(cmd *cobra.Command, args []string) error {
	path := args[0]

	mode, err := resolveMode(path, playMode)
	if err != nil {
		return err
	}

	var in io.Reader
	if path == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("can't open %s file %q: %w", mode, path, err)
		}
		defer f.Close()
		in = f
	}

	if verbose >= 1 {
		fmt.Fprintf(os.Stderr, "Playing %s file %q.\n", strings.ToUpper(mode.String()), path)
	}

	return runEngine(cmd, bufio.NewReader(in), mode)
}

func resolveMode(path, flag string) (engine.Mode, error) {
	switch flag {
	case "svf":
		return engine.ModeSVF, nil
	case "xsvf":
		return engine.ModeXSVF, nil
	case "":
	default:
		return 0, fmt.Errorf("unknown mode %q (want svf or xsvf)", flag)
	}
	switch {
	case strings.HasSuffix(path, ".svf"):
		return engine.ModeSVF, nil
	case strings.HasSuffix(path, ".xsvf"):
		return engine.ModeXSVF, nil
	}
	return 0, fmt.Errorf("cannot infer vector format of %q, use --mode", path)
}
