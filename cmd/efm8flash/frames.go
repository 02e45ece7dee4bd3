package main

import (
	"fmt"

	"code.cloudfoundry.org/bytefmt"
	"github.com/spf13/cobra"

	"github.com/moffa90/go-efm8/protocol"
)

func newFramesCmd(f *flags) *cobra.Command {
	var binary bool

	cmd := &cobra.Command{
		Use:   "frames <firmware.hex>",
		Short: "Print the bootloader frames for a firmware file without a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := f.settings(cmd)
			if err != nil {
				return err
			}

			img, err := loadImage(args[0], binary)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# %s, %s, crc 0x%04X\n", args[0], bytefmt.ByteSize(uint64(img.Len())), img.CRC16())

			n := 0
			for frame := range img.BuildFrames(protocol.WithVerify(s.Verify), protocol.WithRun(s.Run)) {
				fmt.Fprintf(out, "%4d %-6s %s\n", n, frame.Command, formatFrame(frame))
				n++
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&binary, "bin", false, "treat the firmware file as a raw binary")
	cmd.Flags().Bool("no-verify", false, "omit the CRC verification frame")
	cmd.Flags().Bool("no-run", false, "omit the run frame")

	return cmd
}

// formatFrame renders the serialized frame as space separated hex bytes.
func formatFrame(frame protocol.Frame) string {
	return fmt.Sprintf("% X", frame.Bytes())
}
