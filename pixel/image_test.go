package pixel

import (
	"encoding/binary"
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestCBGR16Image(t *testing.T) {
	testCases := []image.Point{
		{},
		image.Pt(1, 1),
		image.Pt(2, 2),
		image.Pt(256, 32),
		image.Pt(320, 240),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			i := NewCBGR16Image(test.X, test.Y)

			if v := i.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected image size %s, got %s", test, v)
			}
			if v := i.ColorModel(); v != CBGR16Model {
				it.Errorf("expected color model %T, got %T", CBGR16Model, v)
			}

			it.Run("in-bounds", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := testRandomColor()
						i.Set(x, y, c)
						if v := CBGR16Model.Convert(c); i.At(x, y) != v {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				for y := -test.Y; y < test.Y*2; y++ {
					for x := -test.X; x < test.X*2; x++ {
						i.Set(x, y, testRandomColor())
						if x < 0 || y < 0 {
							if v := i.At(x, y); v != color.Transparent {
								itt.Fatalf("pixel (%d,%d) is %#+v, expected transparent", x, y, v)
							}
						}
					}
				}
			})

			it.Run("fill", func(itt *testing.T) {
				c := testRandomColor()
				i.Fill(c)
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := CBGR16Model.Convert(c); i.At(x, y) != v {
						itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
					}
				}
			})

			it.Run("clear", func(itt *testing.T) {
				i.Clear()
				for j, v := range i.Pix {
					if v != 0 {
						itt.Fatalf("byte %d is %#02x after clear", j, v)
					}
				}
			})
		})
	}
}

func TestPixOffset(t *testing.T) {
	i := &CBGR16Image{Buffer: Buffer{Rect: image.Rect(0, 0, 320, 240), Stride: 640}}
	tests := []struct {
		X, Y int
		Want int
	}{
		{0, 0, 0},
		{1, 0, 2},
		{0, 1, 640},
		{319, 239, 239*640 + 319*2},
	}
	for _, test := range tests {
		if v := i.PixOffset(test.X, test.Y); v != test.Want {
			t.Errorf("(%d,%d): expected offset %d, got %d", test.X, test.Y, test.Want, v)
		}
	}
}

func TestSetCBGR16ByteOrder(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		i := NewCBGR16Image(2, 1)
		i.Order = order
		i.SetCBGR16(1, 0, 0x1234)
		if v := order.Uint16(i.Pix[2:]); v != 0x1234 {
			t.Errorf("%s: expected 0x1234, got %#04x", order, v)
		}
		if i.Pix[0] != 0 || i.Pix[1] != 0 {
			t.Errorf("%s: pixel (0,0) was written", order)
		}
	}
}

func TestBlock(t *testing.T) {
	var (
		i     = NewCBGR16Image(8, 8)
		value = NESPalette.CBGR16()[0x16]
	)
	i.Block(3, 4, value)

	written := map[int]bool{}
	for j := 0; j < len(i.Pix); j += 2 {
		if i.Order.Uint16(i.Pix[j:]) != 0 {
			written[j] = true
		}
	}
	want := []int{
		i.PixOffset(3, 4),
		i.PixOffset(4, 4),
		i.PixOffset(3, 5),
		i.PixOffset(4, 5),
	}
	if len(written) != len(want) {
		t.Fatalf("expected %d pixels written, got %d", len(want), len(written))
	}
	for _, offset := range want {
		if !written[offset] {
			t.Errorf("expected offset %d to be written", offset)
		}
		if v := i.Order.Uint16(i.Pix[offset:]); v != value {
			t.Errorf("offset %d: expected %#04x, got %#04x", offset, value, v)
		}
	}
}

func TestFillRect(t *testing.T) {
	var (
		i     = NewCBGR16Image(16, 16)
		value = EncodeCBGR16(0xff, 0xff, 0xff)
	)
	i.FillRect(5, 3, value)

	var count int
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			v := i.Order.Uint16(i.Pix[i.PixOffset(x, y):])
			inside := x < 5 && y < 3
			switch {
			case inside && v != value:
				t.Errorf("pixel (%d,%d) not filled", x, y)
			case !inside && v != 0:
				t.Errorf("pixel (%d,%d) outside region was written", x, y)
			}
			if v != 0 {
				count++
			}
		}
	}
	if count != 5*3 {
		t.Errorf("expected %d pixels written, got %d", 5*3, count)
	}
}

func TestUnchecked(t *testing.T) {
	i := NewCBGR16Image(4, 4)
	i.Checked = false
	i.Rect = image.Rect(0, 0, 2, 2)

	// Outside Rect but inside Pix: stored.
	i.SetCBGR16(3, 3, 0xbeef)
	if v := i.Order.Uint16(i.Pix[i.PixOffset(3, 3):]); v != 0xbeef {
		t.Errorf("unchecked write outside rect: expected 0xbeef, got %#04x", v)
	}

	i.Checked = true
	i.SetCBGR16(3, 2, 0xbeef)
	if v := i.Order.Uint16(i.Pix[i.PixOffset(3, 2):]); v != 0 {
		t.Errorf("checked write outside rect: expected 0, got %#04x", v)
	}

	i.Checked = false
	defer func() {
		if recover() == nil {
			t.Error("expected write past the end of the buffer to panic")
		}
	}()
	i.SetCBGR16(0, 4, 0xbeef)
}

func testRandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(255)),
		G: uint8(rand.Intn(255)),
		B: uint8(rand.Intn(255)),
		A: 0xFF,
	}
}
