package wallet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	valid := "0x" + strings.Repeat("ab12", 16)
	require.Len(t, valid, 66)

	tests := []struct {
		name string
		addr string
		want bool
	}{
		{"lowercase hex", valid, true},
		{"uppercase hex", "0x" + strings.Repeat("AB12", 16), true},
		{"mixed case hex", "0x" + strings.Repeat("Ab12", 16), true},
		{"missing prefix", strings.Repeat("ab12", 16), false},
		{"too short", "0x" + strings.Repeat("ab", 31), false},
		{"too long", "0x" + strings.Repeat("ab", 33), false},
		{"non-hex characters", "0x" + strings.Repeat("zz12", 16), false},
		{"empty", "", false},
		{"prefix only", "0x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsValid(tt.addr))
		})
	}
}

func TestNormalize(t *testing.T) {
	upper := "0x" + strings.Repeat("AB12", 16)
	lower := "0x" + strings.Repeat("ab12", 16)
	require.Equal(t, lower, Normalize(upper))
	require.Equal(t, lower, Normalize(lower))
}
