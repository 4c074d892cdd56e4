package vm

import "image/color"

// RGB565ToRGBA expands a screen word into an 8-bit-per-channel opaque
// color, using the same left-shift-and-replicate widening the original
// engine's host used (bits 15..11 = R, 10..5 = G, 4..0 = B).
func RGB565ToRGBA(w Word) color.RGBA {
	r5 := byte(w>>11) & 0x1F
	g6 := byte(w>>5) & 0x3F
	b5 := byte(w) & 0x1F
	return color.RGBA{
		R: (r5 << 3) | (r5 >> 2),
		G: (g6 << 2) | (g6 >> 4),
		B: (b5 << 3) | (b5 >> 2),
		A: 0xFF,
	}
}
