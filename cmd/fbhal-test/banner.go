package main

import (
	"image"

	"github.com/golang/freetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/BeatGlow/fbhal/draw"
)

// bannerImage renders text in Go Regular to a coverage mask cropped to the drawn width.
func bannerImage(text string, size float64) (*image.Alpha, error) {
	f, err := freetype.ParseFont(goregular.TTF)
	if err != nil {
		return nil, err
	}

	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(f)
	c.SetFontSize(size)
	c.SetHinting(font.HintingFull)
	c.SetSrc(image.Opaque)

	var (
		h   = int(size * 1.5)
		w   = int(size) * len(text)
		dst = image.NewAlpha(image.Rect(0, 0, w, h))
	)
	c.SetDst(dst)
	c.SetClip(dst.Bounds())

	end, err := c.DrawString(text, freetype.Pt(0, int(c.PointToFixed(size)>>6)))
	if err != nil {
		return nil, err
	}
	if x := end.X.Ceil(); x < w {
		return dst.SubImage(image.Rect(0, 0, x, h)).(*image.Alpha), nil
	}
	return dst, nil
}

// plotBanner adds one command per covered banner pixel. Commands are flushed as 2×2
// blocks, so the banner is plotted on even device coordinates at twice its size.
func plotBanner(b *draw.Batch, banner *image.Alpha, at image.Point, c uint8) {
	r := banner.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if banner.AlphaAt(x, y).A >= 0x80 {
				b.Set(at.X+(x-r.Min.X)*2, at.Y+(y-r.Min.Y)*2, c)
			}
		}
	}
}
