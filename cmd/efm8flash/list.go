package main

import (
	"fmt"

	"github.com/karalabe/hid"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/moffa90/go-efm8/usbhid"
)

func newListCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List attached bootloaders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := f.settings(cmd)
			if err != nil {
				return err
			}

			infos, err := usbhid.Enumerate(s.VendorID, s.ProductID)
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				return fmt.Errorf("%w: HID:%04X:%04X", usbhid.ErrNotFound, s.VendorID, s.ProductID)
			}

			// composite devices report one entry per interface
			devices := lo.UniqBy(infos, func(info hid.DeviceInfo) string {
				return info.Serial
			})

			out := cmd.OutOrStdout()
			for _, info := range devices {
				fmt.Fprintf(out, "HID:%04X:%04X\t%s\t%s\n", info.VendorID, info.ProductID, info.Serial, info.Product)
			}
			return nil
		},
	}
}
