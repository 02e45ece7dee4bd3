package protocol

import (
	"iter"
	"slices"
)

// buildConfig holds the frame builder configuration.
type buildConfig struct {
	verify bool
	run    bool
}

// BuildOption is a functional option for BuildFrames.
type BuildOption func(*buildConfig)

// WithVerify enables or disables the CRC verify frame. Default is true.
func WithVerify(verify bool) BuildOption {
	return func(c *buildConfig) {
		c.verify = verify
	}
}

// WithRun enables or disables the final run frame. Default is true.
func WithRun(run bool) BuildOption {
	return func(c *buildConfig) {
		c.run = run
	}
}

// BuildFrames returns the frame sequence that programs image into the device:
//  1. Setup
//  2. Erase/write of every 128-byte chunk, erasing at each 512-byte page
//  3. Verify of the whole image CRC (optional)
//  4. Write of the real first byte
//  5. Run (optional)
//
// Until step 4 the first image byte is sent as BlankByte, so a device that
// loses power mid-transfer never boots a partial image and stays in the
// bootloader. The image is not modified and may be reused.
//
// The sequence is built lazily, one frame per iteration. An empty image
// yields no frames. The image is copied, so later changes to it do not
// affect the sequence.
func BuildFrames(image []byte, opts ...BuildOption) iter.Seq[Frame] {
	cfg := buildConfig{verify: true, run: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	image = clone(image)

	return func(yield func(Frame) bool) {
		if len(image) == 0 {
			return
		}

		first := image[0]

		if !yield(Frame{Command: CmdSetup, Payload: clone(setupPayload)}) {
			return
		}

		for addr := 0; addr < len(image); addr += ChunkSize {
			end := min(addr+ChunkSize, len(image))

			cmd := CmdWrite
			if addr%PageSize == 0 {
				cmd = CmdErase
			}

			a := AddressBytes(uint16(addr))
			payload := make([]byte, 0, 2+end-addr)
			payload = append(payload, a[0], a[1])
			payload = append(payload, image[addr:end]...)
			if addr == 0 {
				payload[2] = BlankByte
			}

			if !yield(Frame{Command: cmd, Payload: payload}) {
				return
			}
		}

		if cfg.verify {
			last := AddressBytes(uint16(len(image) - 1))
			crc := AddressBytes(ImageCRC16(image))
			payload := []byte{0x00, 0x00, last[0], last[1], crc[0], crc[1]}
			if !yield(Frame{Command: CmdVerify, Payload: payload}) {
				return
			}
		}

		if !yield(Frame{Command: CmdWrite, Payload: []byte{0x00, 0x00, first}}) {
			return
		}

		if cfg.run {
			yield(Frame{Command: CmdRun, Payload: clone(runPayload)})
		}
	}
}

// Frames collects the sequence returned by BuildFrames.
func Frames(image []byte, opts ...BuildOption) []Frame {
	return slices.Collect(BuildFrames(image, opts...))
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
