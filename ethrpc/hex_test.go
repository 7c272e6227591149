package ethrpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexQuantityBig(t *testing.T) {
	tests := []struct {
		in      HexQuantity
		want    int64
		wantErr bool
	}{
		{in: "0x0", want: 0},
		{in: "0x", want: 0},
		{in: "0x1a", want: 26},
		{in: "0X1A", want: 26},
		{in: "ff", want: 255},
		{in: "", wantErr: true},
		{in: "0xzz", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			n, err := tt.in.Big()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.Int64())
		})
	}
}
