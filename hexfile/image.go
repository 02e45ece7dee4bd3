package hexfile

import (
	"fmt"
	"iter"

	"github.com/moffa90/go-efm8/protocol"
)

// MaxImageSize is the largest image addressable with 16-bit record addresses.
const MaxImageSize = 0x10000

// Image is a flat firmware image. The byte at index i is loaded at flash
// address i; addresses start at zero and have no gaps.
//
// An Image is never empty and is read-only once created.
type Image struct {
	data []byte
}

// FromBinary creates an image from a raw binary loaded at address zero.
// The data is copied.
func FromBinary(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, &UnsupportedError{Reason: "empty binary image"}
	}
	if len(data) > MaxImageSize {
		return nil, &UnsupportedError{
			Reason: fmt.Sprintf("binary image of %d bytes exceeds %d bytes", len(data), MaxImageSize),
		}
	}

	return &Image{data: append([]byte(nil), data...)}, nil
}

// Len returns the image size in bytes.
func (img *Image) Len() int {
	return len(img.data)
}

// Bytes returns a copy of the image contents.
func (img *Image) Bytes() []byte {
	return append([]byte(nil), img.data...)
}

// At returns the byte at the given address.
func (img *Image) At(addr int) byte {
	return img.data[addr]
}

// LastAddress returns the address of the last image byte.
func (img *Image) LastAddress() uint16 {
	return uint16(len(img.data) - 1)
}

// CRC16 returns the CRC-16/XMODEM of the image as checked by the bootloader.
func (img *Image) CRC16() uint16 {
	return protocol.ImageCRC16(img.data)
}

// BuildFrames returns the lazy bootloader frame sequence that programs this
// image. See protocol.BuildFrames.
func (img *Image) BuildFrames(opts ...protocol.BuildOption) iter.Seq[protocol.Frame] {
	return protocol.BuildFrames(img.data, opts...)
}
