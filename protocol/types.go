package protocol

import "fmt"

// Command identifies a bootloader command.
type Command byte

// String returns the AN945 name of the command.
func (c Command) String() string {
	switch c {
	case CmdSetup:
		return "setup"
	case CmdErase:
		return "erase"
	case CmdWrite:
		return "write"
	case CmdVerify:
		return "verify"
	case CmdRun:
		return "run"
	default:
		return fmt.Sprintf("command 0x%02X", byte(c))
	}
}

// Frame is a single bootloader command with its payload.
// Frames are immutable once built; the payload is owned by the frame.
type Frame struct {
	// Command is the bootloader command code
	Command Command

	// Payload holds the command arguments and data
	Payload []byte
}

// Len returns the frame length as encoded in the length field:
// the command byte plus the payload.
func (f Frame) Len() int {
	return 1 + len(f.Payload)
}

// Bytes serializes the frame for transmission.
//
// Frame structure:
//
//	['$'][LEN][CMD][PAYLOAD...]
func (f Frame) Bytes() []byte {
	frame := make([]byte, 0, FrameHeaderSize+len(f.Payload))
	frame = append(frame, StartOfFrame, byte(f.Len()), byte(f.Command))
	frame = append(frame, f.Payload...)
	return frame
}

// Address returns the big-endian address at the start of an erase or write
// payload, and false for frames that do not carry one.
func (f Frame) Address() (uint16, bool) {
	if f.Command != CmdErase && f.Command != CmdWrite || len(f.Payload) < 2 {
		return 0, false
	}
	return uint16(f.Payload[0])<<8 | uint16(f.Payload[1]), true
}

// String returns a short description used in logs.
func (f Frame) String() string {
	if addr, ok := f.Address(); ok {
		return fmt.Sprintf("%s 0x%04X (%d bytes)", f.Command, addr, len(f.Payload)-2)
	}
	return fmt.Sprintf("%s % X", f.Command, f.Payload)
}
