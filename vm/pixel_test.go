package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGB565ToRGBAExpandsEachChannel(t *testing.T) {
	cases := []struct {
		name    string
		w       Word
		r, g, b byte
	}{
		{"black", 0x0000, 0x00, 0x00, 0x00},
		{"white", 0xFFFF, 0xFF, 0xFF, 0xFF},
		{"pure red", 0xF800, 0xFF, 0x00, 0x00},
		{"pure green", 0x07E0, 0x00, 0xFF, 0x00},
		{"pure blue", 0x001F, 0x00, 0x00, 0xFF},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := RGB565ToRGBA(c.w)
			assert.Equal(t, c.r, got.R)
			assert.Equal(t, c.g, got.G)
			assert.Equal(t, c.b, got.B)
			assert.EqualValues(t, 0xFF, got.A)
		})
	}
}
