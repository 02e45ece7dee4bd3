package bootloader

import (
	"errors"
	"fmt"

	"github.com/moffa90/go-efm8/protocol"
)

var (
	// ErrChecksum matches every VerificationError.
	ErrChecksum = errors.New("image checksum mismatch")

	// ErrResponse matches every ResponseError.
	ErrResponse = errors.New("command not confirmed")
)

// VerificationError indicates that the bootloader rejected the verify frame:
// the CRC of the flash contents does not match the image.
type VerificationError struct {
	// Ack is the acknowledgement byte returned by the device
	Ack byte
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("firmware verification failed: device answered %s", protocol.AckName(e.Ack))
}

// Is reports whether target is ErrChecksum.
func (e *VerificationError) Is(target error) bool {
	return target == ErrChecksum
}

// ResponseError indicates that the bootloader did not confirm a frame.
type ResponseError struct {
	// Command is the command of the rejected frame
	Command protocol.Command

	// Address is the frame address for erase and write frames
	Address uint16

	// Ack is the acknowledgement byte returned by the device
	Ack byte
}

func (e *ResponseError) Error() string {
	if e.Command == protocol.CmdErase || e.Command == protocol.CmdWrite {
		return fmt.Sprintf("%s at 0x%04X not confirmed: device answered %s",
			e.Command, e.Address, protocol.AckName(e.Ack))
	}
	return fmt.Sprintf("%s not confirmed: device answered %s", e.Command, protocol.AckName(e.Ack))
}

// Is reports whether target is ErrResponse.
func (e *ResponseError) Is(target error) bool {
	return target == ErrResponse
}
