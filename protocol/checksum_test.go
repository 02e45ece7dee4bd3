package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTwosComplement(t *testing.T) {
	tests := []struct {
		name     string
		value    uint64
		bits     uint
		expected uint64
	}{
		{name: "zero", value: 0x00, bits: 8, expected: 0x00},
		{name: "one", value: 0x01, bits: 8, expected: 0xFF},
		{name: "ten", value: 0x0A, bits: 8, expected: 0xF6},
		{name: "high bit only", value: 0x80, bits: 8, expected: 0x80},
		{name: "all ones", value: 0xFF, bits: 8, expected: 0x01},
		{name: "16-bit", value: 0x0001, bits: 16, expected: 0xFFFF},
		{name: "16-bit high bit", value: 0x8000, bits: 16, expected: 0x8000},
		{name: "4-bit", value: 0x3, bits: 4, expected: 0xD},
		{name: "64-bit", value: 1, bits: 64, expected: 0xFFFFFFFFFFFFFFFF},
		{name: "invalid width defaults to 8", value: 0x01, bits: 0, expected: 0xFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TwosComplement(tt.value, tt.bits))
		})
	}
}

func TestRecordChecksum(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected byte
	}{
		{
			name:     "empty data",
			data:     []byte{},
			expected: 0x00,
		},
		{
			name:     "single byte",
			data:     []byte{0x01},
			expected: 0xFF,
		},
		{
			name:     "extended linear address record",
			data:     []byte{0x02, 0x00, 0x00, 0x04, 0x00, 0x00},
			expected: 0xFA,
		},
		{
			name:     "end of file record",
			data:     []byte{0x00, 0x00, 0x00, 0x01},
			expected: 0xFF,
		},
		{
			name:     "sum overflows",
			data:     []byte{0xFF, 0xFF, 0xFF, 0xFF},
			expected: 0x04,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RecordChecksum(tt.data)
			assert.Equal(t, tt.expected, result, "RecordChecksum() = 0x%02X", result)

			var sum byte
			for _, b := range tt.data {
				sum += b
			}
			assert.Zero(t, sum+result)
		})
	}
}

func TestImageCRC16(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected uint16
	}{
		{
			name:     "empty data",
			data:     []byte{},
			expected: 0x0000,
		},
		{
			name:     "single byte zero",
			data:     []byte{0x00},
			expected: 0x0000,
		},
		{
			name:     "check value",
			data:     []byte("123456789"),
			expected: 0x31C3,
		},
		{
			name:     "test data",
			data:     []byte{0x01, 0x02, 0x03, 0x04},
			expected: 0x0D03,
		},
		{
			name:     "single letter",
			data:     []byte("A"),
			expected: 0x58E5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ImageCRC16(tt.data)
			assert.Equal(t, tt.expected, result, "ImageCRC16() = 0x%04X", result)
			assert.Equal(t, result, ImageCRC16(tt.data))
		})
	}
}

func TestAddressBytes(t *testing.T) {
	assert.Equal(t, [2]byte{0x01, 0x2B}, AddressBytes(0x012B))
	assert.Equal(t, [2]byte{0x00, 0x00}, AddressBytes(0))
	assert.Equal(t, [2]byte{0xFF, 0xFF}, AddressBytes(0xFFFF))
}

func BenchmarkRecordChecksum(b *testing.B) {
	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RecordChecksum(data)
	}
}

func BenchmarkImageCRC16(b *testing.B) {
	data := make([]byte, 16*1024)
	for i := range data {
		data[i] = byte(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ImageCRC16(data)
	}
}
