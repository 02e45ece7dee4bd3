package hexfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBinary(t *testing.T) {
	data := []byte{0x02, 0x00, 0x10, 0x12}

	img, err := FromBinary(data)
	require.NoError(t, err)
	assert.Equal(t, data, img.Bytes())

	data[0] = 0xFF
	assert.Equal(t, byte(0x02), img.At(0))

	_, err = FromBinary(nil)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = FromBinary(make([]byte, MaxImageSize+1))
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestImageBytesIsCopy(t *testing.T) {
	img, err := FromBinary([]byte{0x01, 0x02})
	require.NoError(t, err)

	b := img.Bytes()
	b[0] = 0xFF
	assert.Equal(t, byte(0x01), img.At(0))
}

func TestWriteHexRoundTrip(t *testing.T) {
	sizes := []int{1, 16, 17, 300, 4096}

	for _, size := range sizes {
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(i*31 + 7)
		}

		img, err := FromBinary(data)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, img.WriteHex(&buf))

		out := buf.String()
		assert.True(t, strings.HasPrefix(out, ":"), "size %d", size)
		assert.Contains(t, out, ":00000001FF")

		parsed, err := ParseReader(strings.NewReader(out))
		require.NoError(t, err, "size %d", size)
		assert.Equal(t, data, parsed.Bytes(), "size %d", size)
	}
}
