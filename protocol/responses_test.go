package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAck(t *testing.T) {
	tests := []struct {
		name    string
		report  []byte
		want    byte
		wantErr bool
	}{
		{name: "success", report: []byte{0x00, AckSuccess}, want: AckSuccess},
		{name: "failure", report: []byte{0x00, '?'}, want: '?'},
		{name: "single byte", report: []byte{AckSuccess}, want: AckSuccess},
		{name: "empty", report: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack, err := ParseAck(tt.report)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrEmptyAck)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ack)
		})
	}
}

func TestAckName(t *testing.T) {
	assert.Equal(t, "ok", AckName(AckSuccess))
	assert.Equal(t, "'C' (0x43)", AckName('C'))
	assert.Equal(t, "0x00", AckName(0x00))
}
