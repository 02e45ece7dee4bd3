package protocol

import (
	"errors"
	"fmt"
)

// ErrEmptyAck is returned when the acknowledgement report holds no bytes.
var ErrEmptyAck = errors.New("empty acknowledgement report")

// ParseAck extracts the acknowledgement byte from a feature report read
// after a frame. The acknowledgement is the last byte of the report.
func ParseAck(report []byte) (byte, error) {
	if len(report) == 0 {
		return 0, ErrEmptyAck
	}
	return report[len(report)-1], nil
}

// AckName returns a printable name for an acknowledgement byte.
func AckName(ack byte) string {
	if ack == AckSuccess {
		return "ok"
	}
	if ack >= 0x20 && ack < 0x7F {
		return fmt.Sprintf("'%c' (0x%02X)", ack, ack)
	}
	return fmt.Sprintf("0x%02X", ack)
}
