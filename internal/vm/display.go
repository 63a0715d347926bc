package vm

import "strings"

// Display is the monochrome display plane, stored row-major.
type Display [ScreenWidth * ScreenHeight]bool

// Pixel returns whether the pixel at the given coordinates is lit.
// Coordinates wrap around the screen edges.
func (d *Display) Pixel(x, y int) bool {
	return d[pixelIndex(x, y)]
}

// Lit returns the number of lit pixels.
func (d *Display) Lit() int {
	var count int
	for _, lit := range d {
		if lit {
			count++
		}
	}
	return count
}

// String renders the display as text, one line per row with '#' for lit
// and '.' for unlit pixels.
func (d *Display) String() string {
	var sb strings.Builder
	sb.Grow((ScreenWidth + 1) * ScreenHeight)
	for y := range ScreenHeight {
		for x := range ScreenWidth {
			if d[y*ScreenWidth+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (d *Display) clear() {
	*d = Display{}
}

// drawSprite XORs the sprite rows onto the display with the top left corner
// at x, y. Every pixel wraps around the screen edges on its own.
// It returns whether a lit pixel was turned off.
func (d *Display) drawSprite(x, y int, sprite []byte) bool {
	var collision bool
	for row, bits := range sprite {
		for col := range 8 {
			if bits&(0x80>>col) == 0 {
				continue
			}
			i := pixelIndex(x+col, y+row)
			if d[i] {
				collision = true
			}
			d[i] = !d[i]
		}
	}
	return collision
}

func pixelIndex(x, y int) int {
	x %= ScreenWidth
	if x < 0 {
		x += ScreenWidth
	}
	y %= ScreenHeight
	if y < 0 {
		y += ScreenHeight
	}
	return y*ScreenWidth + x
}
