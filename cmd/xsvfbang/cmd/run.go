package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/xsvfbang/pkg/engine"
	"github.com/OpenTraceLab/xsvfbang/pkg/host"
)

// runEngine is the common playback path of play and scan: build the
// session and adapter, hand them to the registered sequencing engine and
// print the epilogue. Shutdown is deferred so the hardware pins are
// released even when playback fails partway.
func runEngine(cmd *cobra.Command, in io.ByteReader, mode engine.Mode) error {
	player, err := engine.Registered()
	if err != nil {
		return err
	}

	tr, err := createTransport(transport)
	if err != nil {
		return err
	}

	sess := host.NewSession(in, verbose)
	sess.Diag = cmd.ErrOrStderr()
	sess.Out = cmd.OutOrStdout()
	adapter := host.NewAdapter(sess, tr)
	defer adapter.Shutdown()

	playErr := player.Play(adapter, mode)
	if playErr != nil {
		playErr = fmt.Errorf("error while playing %s: %w", mode, playErr)
	}

	sess.Summary(playErr != nil)

	if sess.Capture.Len() > 0 {
		format := host.FormatDecimal
		switch {
		case hexLE:
			format = host.FormatHexLE
		case hexBE:
			format = host.FormatHexBE
		}
		if format != host.FormatDecimal && sess.Capture.Padded() && verbose >= 1 {
			fmt.Fprintf(sess.Diag, "WARNING: rmask bit count %d is not a multiple of 4, last nibble zero-padded\n",
				sess.Capture.Len())
		}
		fmt.Fprintln(sess.Out, sess.Capture.Render(format))
	}

	if reallocName != "" && sess.Profile.Used() {
		fmt.Fprint(sess.Out, sess.Profile.EmitStaticAllocator(reallocName))
	}

	return playErr
}
