// Command efm8flash flashes Intel HEX firmware onto EFM8 microcontrollers
// through the factory USB HID bootloader (AN945).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/moffa90/go-efm8/bootloader"
	"github.com/moffa90/go-efm8/hexfile"
	"github.com/moffa90/go-efm8/usbhid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "efm8flash:", describe(err))
		os.Exit(1)
	}
}

// describe prefixes the error with the kind of failure.
func describe(err error) string {
	switch {
	case errors.Is(err, hexfile.ErrUnsupported):
		return fmt.Sprintf("unsupported firmware file: %v", err)
	case errors.Is(err, hexfile.ErrChecksum), errors.Is(err, bootloader.ErrChecksum):
		return fmt.Sprintf("checksum failure: %v", err)
	case errors.Is(err, bootloader.ErrResponse):
		return fmt.Sprintf("bootloader failure: %v", err)
	case errors.Is(err, usbhid.ErrNotFound):
		return fmt.Sprintf("%v (is the device in bootloader mode?)", err)
	default:
		return err.Error()
	}
}
