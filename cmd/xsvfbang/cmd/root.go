package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/xsvfbang/pkg/bitbang"
)

var (
	// Global flags
	verbose     int
	transport   string
	hexLE       bool
	hexBE       bool
	reallocName string
	cpuProfile  bool
	profileStop interface{ Stop() }
)

var rootCmd = &cobra.Command{
	Use:   "xsvfbang",
	Short: "SVF/XSVF JTAG player over FT232R synchronous bitbang",
	Long: `xsvfbang replays SVF and XSVF test vector files against a JTAG chain
wired to an FTDI FT232R running in synchronous bitbang mode.

Examples:
  xsvfbang play firmware.xsvf                 # Program a device
  xsvfbang -v play --mode svf -               # Play SVF from stdin, verbose
  xsvfbang scan                               # List devices in the chain
  xsvfbang -L play test.svf                   # Print rmask bits as hex`,
	Version: "1.0.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cpuProfile {
			profileStop = profile.Start(profile.CPUProfile, profile.ProfilePath("."))
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profileStop != nil {
			profileStop.Stop()
			profileStop = nil
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v",
		"verbose output (repeat up to -vvvv)")
	rootCmd.PersistentFlags().StringVarP(&transport, "transport", "t", "ftdi",
		"bitbang transport (ftdi, sim)")
	rootCmd.PersistentFlags().BoolVarP(&hexLE, "hex-le", "L", false,
		"print rmask bits as little-endian hex")
	rootCmd.PersistentFlags().BoolVarP(&hexBE, "hex-be", "B", false,
		"print rmask bits as big-endian hex")
	rootCmd.PersistentFlags().StringVarP(&reallocName, "realloc-dump", "r", "",
		"dump a static allocator for the engine, generated from observed buffer sizes")
	rootCmd.PersistentFlags().BoolVar(&cpuProfile, "profile", false,
		"write a CPU profile of the run")
}

// createTransport builds the selected bitbang backend.
func createTransport(kind string) (bitbang.Transport, error) {
	switch kind {
	case "ftdi":
		return bitbang.NewFTDITransport(), nil
	case "sim", "simulator":
		return bitbang.NewSimTransport(), nil
	default:
		return nil, fmt.Errorf("unknown transport %q (want ftdi or sim)", kind)
	}
}
