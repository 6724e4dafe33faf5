// Package draw builds batches of pixel commands.
//
// The framebuffer HAL only knows how to put single palette-indexed pixels on screen; these
// helpers turn lines and boxes into the commands an engine (or a test pattern) hands to
// [fbhal.Session.Flush]. Coordinates are device coordinates, as in [pixel.Command].
package draw

import (
	"image"

	"github.com/BeatGlow/fbhal/pixel"
)

// Batch is an ordered list of pixel commands. Later commands overwrite earlier ones.
type Batch []pixel.Command

// Set appends a single pixel.
func (b *Batch) Set(x, y int, c uint8) {
	*b = append(*b, pixel.Command{X: x, Y: y, Index: c})
}

// Reset empties the batch, keeping its storage.
func (b *Batch) Reset() {
	*b = (*b)[:0]
}

// Line draws a line between two points, both inclusive.
func (b *Batch) Line(p, q image.Point, c uint8) {
	bresenham(b, p.X, p.Y, q.X, q.Y, c)
}

// HorizontalLine draws a line between (x,y) and (x+w-1,y).
func (b *Batch) HorizontalLine(x, y, w int, c uint8) {
	for i := 0; i < w; i++ {
		b.Set(x+i, y, c)
	}
}

// VerticalLine draws a line between (x,y) and (x,y+h-1).
func (b *Batch) VerticalLine(x, y, h int, c uint8) {
	for i := 0; i < h; i++ {
		b.Set(x, y+i, c)
	}
}

// Rectangle draws the outline of rect.
func (b *Batch) Rectangle(rect image.Rectangle, c uint8) {
	w, h := rect.Dx(), rect.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	b.HorizontalLine(rect.Min.X, rect.Min.Y, w, c)
	if h > 1 {
		b.HorizontalLine(rect.Min.X, rect.Max.Y-1, w, c)
	}
	if h > 2 {
		b.VerticalLine(rect.Min.X, rect.Min.Y+1, h-2, c)
		if w > 1 {
			b.VerticalLine(rect.Max.X-1, rect.Min.Y+1, h-2, c)
		}
	}
}

// Box draws a filled rectangle.
func (b *Batch) Box(rect image.Rectangle, c uint8) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		b.HorizontalLine(rect.Min.X, y, rect.Dx(), c)
	}
}

// Blocks draws a filled rectangle with one command per step pixels in both directions,
// for targets that upscale every command (such as the 2×2 block flush).
func (b *Batch) Blocks(rect image.Rectangle, step int, c uint8) {
	if step < 1 {
		step = 1
	}
	for y := rect.Min.Y; y < rect.Max.Y; y += step {
		for x := rect.Min.X; x < rect.Max.X; x += step {
			b.Set(x, y, c)
		}
	}
}

// bresenham plots the integer line from (x1,y1) to (x2,y2).
func bresenham(dst *Batch, x1, y1, x2, y2 int, c uint8) {
	dx, sx := abs(x2-x1), sign(x2-x1)
	dy, sy := -abs(y2-y1), sign(y2-y1)
	e := dx + dy

	for {
		dst.Set(x1, y1, c)
		e2 := 2 * e
		if e2 >= dy {
			if x1 == x2 {
				return
			}
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			if y1 == y2 {
				return
			}
			e += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
