package protocol

import "github.com/sigurn/crc16"

var xmodemTable = crc16.MakeTable(crc16.CRC16_XMODEM)

// TwosComplement returns the unsigned value whose bits match the two's
// complement of v in a field of the given width. Widths outside 1..64 are
// treated as 8.
func TwosComplement(v uint64, bits uint) uint64 {
	if bits == 0 || bits > 64 {
		bits = 8
	}

	high := uint64(1) << (bits - 1)
	mask := high<<1 - 1 // wraps to all ones for 64 bits

	return ((v & high) - (v &^ high)) & mask
}

// RecordChecksum computes the 8-bit checksum of an Intel HEX record.
// The sum of all covered bytes plus the checksum is zero modulo 256.
func RecordChecksum(data []byte) byte {
	var sum uint64
	for _, b := range data {
		sum += uint64(b)
	}
	return byte(TwosComplement(sum&0xFF, 8))
}

// ImageCRC16 computes the CRC-16/XMODEM of the image as checked by the
// bootloader's verify command.
//
// CRC-16/XMODEM parameters:
//   - Polynomial: 0x1021
//   - Initial value: 0x0000
//   - No reflection, no final XOR
func ImageCRC16(data []byte) uint16 {
	return crc16.Checksum(data, xmodemTable)
}

// AddressBytes splits a 16-bit value into big-endian bytes.
func AddressBytes(v uint16) [2]byte {
	return [2]byte{byte(v >> 8), byte(v)}
}
