package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(size int, first byte) []byte {
	image := make([]byte, size)
	image[0] = first
	for i := 1; i < size; i++ {
		image[i] = byte(i * 7)
	}
	return image
}

func TestBuildFrames300ByteImage(t *testing.T) {
	image := testImage(300, 0x12)

	frames := Frames(image)
	require.Len(t, frames, 7)

	assert.Equal(t, CmdSetup, frames[0].Command)
	assert.Equal(t, []byte{0xA5, 0xF1, 0x00}, frames[0].Payload)

	chunk0 := append([]byte{0x00, 0x00, BlankByte}, image[1:128]...)
	assert.Equal(t, Frame{Command: CmdErase, Payload: chunk0}, frames[1])

	chunk1 := append([]byte{0x00, 0x80}, image[128:256]...)
	assert.Equal(t, Frame{Command: CmdWrite, Payload: chunk1}, frames[2])

	chunk2 := append([]byte{0x01, 0x00}, image[256:300]...)
	assert.Equal(t, Frame{Command: CmdWrite, Payload: chunk2}, frames[3])
	assert.Len(t, frames[3].Payload, 2+44)

	assert.Equal(t, CmdVerify, frames[4].Command)
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x2B, 0x66, 0x03}, frames[4].Payload)

	assert.Equal(t, Frame{Command: CmdWrite, Payload: []byte{0x00, 0x00, 0x12}}, frames[5])
	assert.Equal(t, Frame{Command: CmdRun, Payload: []byte{0x00, 0x00}}, frames[6])
}

func TestBuildFramesOptions(t *testing.T) {
	image := testImage(10, 0x02)

	tests := []struct {
		name     string
		opts     []BuildOption
		commands []Command
	}{
		{
			name:     "defaults",
			commands: []Command{CmdSetup, CmdErase, CmdVerify, CmdWrite, CmdRun},
		},
		{
			name:     "without verify",
			opts:     []BuildOption{WithVerify(false)},
			commands: []Command{CmdSetup, CmdErase, CmdWrite, CmdRun},
		},
		{
			name:     "without run",
			opts:     []BuildOption{WithRun(false)},
			commands: []Command{CmdSetup, CmdErase, CmdVerify, CmdWrite},
		},
		{
			name:     "without verify and run",
			opts:     []BuildOption{WithVerify(false), WithRun(false)},
			commands: []Command{CmdSetup, CmdErase, CmdWrite},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var commands []Command
			for _, f := range Frames(image, tt.opts...) {
				commands = append(commands, f.Command)
			}
			assert.Equal(t, tt.commands, commands)
		})
	}
}

func TestBuildFramesChunking(t *testing.T) {
	sizes := []int{1, 127, 128, 129, 511, 512, 513, 1000, 2048, 4097}

	for _, size := range sizes {
		image := testImage(size, 0x5A)
		frames := Frames(image)

		// setup first, restore write and run last
		require.Equal(t, CmdSetup, frames[0].Command)
		restore := frames[len(frames)-2]
		assert.Equal(t, Frame{Command: CmdWrite, Payload: []byte{0x00, 0x00, 0x5A}}, restore)
		assert.Equal(t, CmdRun, frames[len(frames)-1].Command)

		chunks := frames[1 : len(frames)-3]
		assert.Len(t, chunks, (size+ChunkSize-1)/ChunkSize, "size %d", size)

		var rebuilt []byte
		for i, f := range chunks {
			addr, ok := f.Address()
			require.True(t, ok)
			assert.Equal(t, uint16(i*ChunkSize), addr)

			if int(addr)%PageSize == 0 {
				assert.Equal(t, CmdErase, f.Command, "size %d addr 0x%04X", size, addr)
			} else {
				assert.Equal(t, CmdWrite, f.Command, "size %d addr 0x%04X", size, addr)
			}

			assert.LessOrEqual(t, len(f.Payload)-2, ChunkSize)
			rebuilt = append(rebuilt, f.Payload[2:]...)
		}

		require.Len(t, rebuilt, size)
		assert.Equal(t, byte(BlankByte), rebuilt[0])
		assert.Equal(t, image[1:], rebuilt[1:])
	}
}

func TestBuildFramesWithholdsFirstByte(t *testing.T) {
	image := testImage(700, 0x02)

	frames := Frames(image)
	for i, f := range frames[:len(frames)-2] {
		if addr, ok := f.Address(); ok && addr == 0 {
			assert.Equal(t, byte(BlankByte), f.Payload[2], "frame %d", i)
		}
	}

	last := frames[len(frames)-2]
	assert.Equal(t, []byte{0x00, 0x00, 0x02}, last.Payload)
}

func TestBuildFramesVerifyUsesTrueImage(t *testing.T) {
	image := testImage(200, 0x33)
	crc := AddressBytes(ImageCRC16(image))

	frames := Frames(image, WithRun(false))
	verify := frames[len(frames)-2]
	require.Equal(t, CmdVerify, verify.Command)
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0xC7, crc[0], crc[1]}, verify.Payload)

	blanked := append([]byte{BlankByte}, image[1:]...)
	assert.NotEqual(t, AddressBytes(ImageCRC16(blanked)), crc)
}

func TestBuildFramesDoesNotModifyImage(t *testing.T) {
	image := testImage(300, 0x12)
	original := append([]byte(nil), image...)

	seq := BuildFrames(image)
	image[0] = 0x99
	image[200] = 0x99

	frames := Frames(original)
	var got []Frame
	for f := range seq {
		got = append(got, f)
	}

	assert.Equal(t, frames, got)
	assert.Equal(t, byte(0x99), image[0])
}

func TestBuildFramesReusable(t *testing.T) {
	image := testImage(300, 0x12)
	seq := BuildFrames(image)

	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}

	assert.Equal(t, 7, first)
	assert.Equal(t, first, second)
}

func TestBuildFramesStopsEarly(t *testing.T) {
	image := testImage(1024, 0x01)

	var seen []Command
	for f := range BuildFrames(image) {
		seen = append(seen, f.Command)
		if len(seen) == 2 {
			break
		}
	}

	assert.Equal(t, []Command{CmdSetup, CmdErase}, seen)
}

func TestBuildFramesEmptyImage(t *testing.T) {
	assert.Empty(t, Frames(nil))
	assert.Empty(t, Frames([]byte{}))
}

func BenchmarkBuildFrames(b *testing.B) {
	image := testImage(16*1024, 0x02)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for f := range BuildFrames(image) {
			_ = f.Bytes()
		}
	}
}
