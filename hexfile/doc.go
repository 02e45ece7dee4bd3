// Package hexfile parses Intel HEX firmware files into flat images for the
// EFM8 bootloader.
//
// # Intel HEX Format
//
// Each record is a line of hex pairs starting with ':':
//
//	:LLAAAATT[DD...]CC
//	  LL   = number of data bytes
//	  AAAA = 16-bit load address (big-endian)
//	  TT   = record type (00 = data, 01 = end of file, 04 = extended linear address)
//	  DD   = data bytes
//	  CC   = two's complement of the sum of all preceding record bytes
//
// Only linear images are supported: data records must follow each other
// without gaps starting at address zero, and the only accepted extended
// linear address record is the default ":020000040000FA".
//
// # Usage
//
// Parse a .hex file from disk:
//
//	img, err := hexfile.Parse("firmware.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Image size: %d bytes, CRC 0x%04X\n", img.Len(), img.CRC16())
//
// Parse from an io.Reader:
//
//	img, err := hexfile.ParseReader(strings.NewReader(hexContent))
//
// Raw binaries can be wrapped with FromBinary and written back out as
// Intel HEX with WriteHex.
//
// # Error Handling
//
// Parse returns:
//   - *UnsupportedError for unsupported record types, non-linear addresses,
//     malformed records or input without data (matches ErrUnsupported)
//   - *ChecksumError for records whose checksum does not match (matches ErrChecksum)
//
// All errors include the offending line number where there is one.
package hexfile
