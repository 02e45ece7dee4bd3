package main

import (
	"fmt"
	"os"

	"code.cloudfoundry.org/bytefmt"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/moffa90/go-efm8/bootloader"
	"github.com/moffa90/go-efm8/hexfile"
	"github.com/moffa90/go-efm8/protocol"
	"github.com/moffa90/go-efm8/usbhid"
)

// flags holds the command line flags shared by all commands.
type flags struct {
	configPath string
	binary     bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "efm8flash [flags] <firmware.hex>",
		Short: "Flash EFM8 microcontrollers via the factory USB HID bootloader",
		Long: `Flash via AN945: EFM8 Factory Bootloader HID.

The image is written with its first byte blanked, verified against its
CRC, and only then completed, so an interrupted transfer leaves the device
in the bootloader.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := f.settings(cmd)
			if err != nil {
				return err
			}
			return flash(cmd, s, args[0], f.binary, newLogger(cmd.ErrOrStderr(), f.verbose))
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "YAML configuration file")
	pf.Uint16("vid", protocol.VendorID, "USB vendor ID")
	pf.Uint16("pid", protocol.ProductID, "USB product ID")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log every frame")

	cmd.Flags().StringP("serial", "s", "", "serial number of device to program")
	cmd.Flags().Bool("no-verify", false, "skip the CRC verification frame")
	cmd.Flags().Bool("no-run", false, "stay in the bootloader after flashing")
	cmd.Flags().BoolVar(&f.binary, "bin", false, "treat the firmware file as a raw binary")

	cmd.AddCommand(newListCmd(f), newFramesCmd(f), newConvertCmd())

	return cmd
}

// flash programs the firmware file into the selected device.
func flash(cmd *cobra.Command, s settings, path string, binary bool, log *logrus.Logger) error {
	img, err := loadImage(path, binary)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"file": path,
		"size": bytefmt.ByteSize(uint64(img.Len())),
		"crc":  fmt.Sprintf("0x%04X", img.CRC16()),
	}).Info("loaded firmware")

	dev, err := usbhid.Open(s.VendorID, s.ProductID, s.Serial)
	if err != nil {
		return err
	}
	defer func() { _ = dev.Close() }()

	log.Infof("download over port: HID:%04X:%04X %s", s.VendorID, s.ProductID, dev.Info().Serial)

	progress := newProgressReporter(cmd.ErrOrStderr(), img.Len())

	session := bootloader.New(dev,
		bootloader.WithLogger(logrusLogger{entry: logrus.NewEntry(log)}),
		bootloader.WithProgressCallback(progress.update),
		bootloader.WithVerify(s.Verify),
		bootloader.WithRun(s.Run),
	)

	if err := session.Flash(cmd.Context(), img); err != nil {
		return fmt.Errorf("flash %s: %w", path, err)
	}

	log.Info("firmware flashed")
	return nil
}

// loadImage reads an Intel HEX file, or a raw binary when binary is set.
func loadImage(path string, binary bool) (*hexfile.Image, error) {
	if !binary {
		img, err := hexfile.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return img, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read firmware: %w", err)
	}

	img, err := hexfile.FromBinary(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}
