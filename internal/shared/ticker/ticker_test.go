package ticker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"AAPL", "AAPL", false},
		{"aapl", "AAPL", false},
		{"  msft ", "MSFT", false},
		{"BRK-B", "BRK-B", false},
		{"7203.T", "7203.T", false},
		{"^gspc", "^GSPC", false},
		{"", "", true},
		{"   ", "", true},
		{"AA PL", "", true},
		{"-AAPL", "", true},
		{"AAPL/USD", "", true},
		{"ABCDEFGHIJKLMNOP", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := Normalize(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
