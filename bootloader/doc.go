// Package bootloader drives the EFM8 factory USB HID bootloader.
//
// # Overview
//
// This package sends the AN945 frame sequence to the device and checks the
// acknowledgement of every frame:
//   - Setup
//   - Erase and write of the image in 128-byte chunks
//   - Verify of the image CRC
//   - Write of the withheld first image byte
//   - Run
//
// # Basic Usage
//
// The simplest way to program a device:
//
//	// Open the bootloader (any Transport works)
//	device, err := usbhid.Open(protocol.VendorID, protocol.ProductID, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer device.Close()
//
//	// Parse firmware file
//	img, err := hexfile.Parse("firmware.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Program
//	err = bootloader.New(device).Flash(context.Background(), img)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Configuration Options
//
// Customize behavior with functional options:
//
//	session := bootloader.New(device,
//	    bootloader.WithProgressCallback(progressFunc),
//	    bootloader.WithLogger(myLogger),
//	    bootloader.WithVerify(true),
//	    bootloader.WithRun(false),
//	)
//
// # Error Handling
//
// The first frame the device does not acknowledge aborts the session. Nothing
// is retried. The package provides structured error types:
//   - VerificationError: the device rejected the image CRC (matches ErrChecksum)
//   - ResponseError: the device rejected any other frame (matches ErrResponse)
//
// Because the first image byte is only written after verification, a failed
// session leaves the device in the bootloader on the next power cycle.
//
// # Hardware Independence
//
// Session depends only on the Transport interface, so it can run against
// package usbhid, a simulated device, or a test double.
package bootloader
