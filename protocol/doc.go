// Package protocol implements the Silicon Labs EFM8 factory bootloader
// protocol described in application note AN945.
//
// This package provides the checksums the protocol depends on and builds the
// ordered sequence of bootloader command frames for a flat firmware image.
//
// # Protocol Overview
//
// Every command is a short frame:
//
//	['$'][LEN][CMD][PAYLOAD...]
//
// Where:
//   - '$' = Start of frame (0x24)
//   - LEN = length of CMD plus PAYLOAD
//   - CMD = Setup (0x31), Erase (0x32), Write (0x33), Verify (0x34), Run (0x36)
//
// The bootloader answers each frame with a single acknowledgement byte;
// AckSuccess ('@') means the frame was accepted.
//
// # Frame Builder
//
// Use BuildFrames to derive the programming sequence for an image:
//
//	for frame := range protocol.BuildFrames(image) {
//	    send(frame.Bytes())
//	}
//
// The first image byte is withheld until every other byte has been written
// and verified, so an interrupted transfer leaves the device in the
// bootloader.
//
// # Checksums
//
// RecordChecksum computes the 8-bit Intel HEX record checksum and ImageCRC16
// the CRC-16/XMODEM used by the Verify command.
package protocol
