package hexfile

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/moffa90/go-efm8/protocol"
)

// Intel HEX record types.
const (
	// RecordData holds image bytes
	RecordData = 0x00

	// RecordEOF terminates the file
	RecordEOF = 0x01

	// RecordExtendedLinearAddress sets the upper 16 address bits
	RecordExtendedLinearAddress = 0x04
)

// Constants for Intel HEX record parsing.
const (
	// RecordMark starts every record line
	RecordMark = ':'

	// RecordHeaderSize is the size of the length, address and type fields
	RecordHeaderSize = 4

	// RecordChecksumSize is the size of the record checksum field
	RecordChecksumSize = 1

	// DefaultImageCapacity is the default initial capacity for the image
	DefaultImageCapacity = 16 * 1024
)

// record is a decoded Intel HEX line.
type record struct {
	length   byte
	address  uint16
	kind     byte
	data     []byte
	checksum byte
	raw      []byte
}

// Parse parses an Intel HEX file from the given file path.
// Returns the flat image or an error if parsing fails.
//
// Example:
//
//	img, err := hexfile.Parse("firmware.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Image size: %d bytes\n", img.Len())
func Parse(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseReader(f)
}

// ParseReader parses an Intel HEX file from any io.Reader.
//
// Only the subset produced for EFM8 parts is accepted: data records that
// continue linearly from address zero, an optional extended linear address
// record selecting the default upper address 0x0000, and an end of file
// record. Lines that do not start with ':' are ignored, and so is everything
// after the end of file record.
//
// Returns *UnsupportedError for input outside this subset or without data,
// and *ChecksumError when a record checksum does not match. No partial image
// is returned on error.
func ParseReader(r io.Reader) (*Image, error) {
	scanner := bufio.NewScanner(r)

	data := make([]byte, 0, DefaultImageCapacity)
	lineNum := 0

scan:
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), " \t\r")

		// Skip everything that is not a record
		if line == "" || line[0] != RecordMark {
			continue
		}

		rec, err := parseRecord(line[1:])
		if err != nil {
			return nil, &UnsupportedError{Line: lineNum, Reason: err.Error()}
		}

		switch rec.kind {
		case RecordExtendedLinearAddress:
			if err := verifyRecord(lineNum, rec); err != nil {
				return nil, err
			}
			if rec.length != 2 || rec.data[0] != 0 || rec.data[1] != 0 {
				return nil, &UnsupportedError{
					Line:   lineNum,
					Reason: fmt.Sprintf("extended linear address 0x%X is not supported", rec.data),
				}
			}
			continue
		case RecordEOF:
			if err := verifyRecord(lineNum, rec); err != nil {
				return nil, err
			}
			break scan
		case RecordData:
		default:
			return nil, &UnsupportedError{
				Line:   lineNum,
				Reason: fmt.Sprintf("record type 0x%02X is not supported", rec.kind),
			}
		}

		if int(rec.address) != len(data) {
			return nil, &UnsupportedError{
				Line:   lineNum,
				Reason: fmt.Sprintf("non-linear address 0x%04X, expected 0x%04X", rec.address, len(data)),
			}
		}

		if len(data)+len(rec.data) > MaxImageSize {
			return nil, &UnsupportedError{
				Line:   lineNum,
				Reason: fmt.Sprintf("record at 0x%04X runs past the %d byte address space", rec.address, MaxImageSize),
			}
		}

		if err := verifyRecord(lineNum, rec); err != nil {
			return nil, err
		}

		data = append(data, rec.data...)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if len(data) == 0 {
		return nil, &UnsupportedError{Reason: "no Intel HEX data records found"}
	}

	return &Image{data: data}, nil
}

// parseRecord decodes a record line without its leading ':'.
//
// Record format:
//
//	[LEN(1)][ADDR(2)][TYPE(1)][DATA(LEN)][CHECKSUM(1)]
//
// All values are hex-encoded. ADDR is big-endian.
func parseRecord(line string) (*record, error) {
	raw, err := hex.DecodeString(line)
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}

	if len(raw) < RecordHeaderSize+RecordChecksumSize {
		return nil, fmt.Errorf("record too short: got %d bytes, minimum is %d",
			len(raw), RecordHeaderSize+RecordChecksumSize)
	}

	length := raw[0]
	expectedLen := RecordHeaderSize + int(length) + RecordChecksumSize
	if len(raw) != expectedLen {
		return nil, fmt.Errorf("record length mismatch: got %d bytes, expected %d (header=%d + data=%d + checksum=%d)",
			len(raw), expectedLen, RecordHeaderSize, length, RecordChecksumSize)
	}

	return &record{
		length:   length,
		address:  uint16(raw[1])<<8 | uint16(raw[2]),
		kind:     raw[3],
		data:     raw[RecordHeaderSize : RecordHeaderSize+int(length)],
		checksum: raw[len(raw)-1],
		raw:      raw,
	}, nil
}

// verifyRecord checks the embedded checksum against the computed checksum of
// all preceding record bytes.
func verifyRecord(lineNum int, rec *record) error {
	expected := protocol.RecordChecksum(rec.raw[:len(rec.raw)-RecordChecksumSize])
	if rec.checksum != expected {
		return &ChecksumError{
			Line:     lineNum,
			Expected: expected,
			Actual:   rec.checksum,
		}
	}
	return nil
}
