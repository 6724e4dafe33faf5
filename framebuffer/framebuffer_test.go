package framebuffer

import (
	"errors"
	"image"
	"testing"

	"github.com/BeatGlow/fbhal/pixel"
)

type fakeDevice struct {
	info      VarScreenInfo
	queryErr  error
	mapErr    error
	unmapErr  error
	mem       []byte
	mapped    int
	unmapped  int
	closed    int
	shortMaps bool
}

func newFakeDevice(bpp, xres, yres uint32) *fakeDevice {
	return &fakeDevice{
		info: VarScreenInfo{
			Xres:         xres,
			Yres:         yres,
			BitsPerPixel: bpp,
			Red:          BitField{Offset: 0, Length: 5},
			Green:        BitField{Offset: 5, Length: 6},
			Blue:         BitField{Offset: 11, Length: 5},
		},
	}
}

func (d *fakeDevice) Name() string { return "/dev/fake" }

func (d *fakeDevice) VarScreenInfo() (VarScreenInfo, error) {
	return d.info, d.queryErr
}

func (d *fakeDevice) Mmap(length int) ([]byte, error) {
	if d.mapErr != nil {
		return nil, d.mapErr
	}
	d.mapped++
	if d.shortMaps {
		length /= 2
	}
	d.mem = make([]byte, length)
	for i := range d.mem {
		d.mem[i] = 0xa5 // stale contents
	}
	return d.mem, nil
}

func (d *fakeDevice) Munmap([]byte) error {
	d.unmapped++
	return d.unmapErr
}

func (d *fakeDevice) Close() error {
	d.closed++
	return nil
}

func TestResolve(t *testing.T) {
	g, err := Resolve(newFakeDevice(16, 320, 240).info)
	if err != nil {
		t.Fatal(err)
	}
	if v := g.BytesPerPixel(); v != 2 {
		t.Errorf("expected 2 bytes per pixel, got %d", v)
	}
	if v := g.Stride(); v != 640 {
		t.Errorf("expected stride 640, got %d", v)
	}
	if v := g.Size(); v != 153600 {
		t.Errorf("expected size 153600, got %d", v)
	}
}

func TestResolveUnsupportedDepth(t *testing.T) {
	for _, bpp := range []uint32{8, 15, 24, 32} {
		if _, err := Resolve(newFakeDevice(bpp, 320, 240).info); !errors.Is(err, ErrUnsupportedDepth) {
			t.Errorf("%d bpp: expected ErrUnsupportedDepth, got %v", bpp, err)
		}
	}
}

func TestMap(t *testing.T) {
	dev := newFakeDevice(16, 320, 240)
	fb, err := Map(dev)
	if err != nil {
		t.Fatal(err)
	}
	if len(fb.Pix()) != 153600 {
		t.Errorf("expected 153600 mapped bytes, got %d", len(fb.Pix()))
	}
	for i, v := range fb.Pix() {
		if v != 0 {
			t.Fatalf("byte %d is %#02x, expected mapping to be cleared", i, v)
		}
	}

	i := fb.Image(false)
	i.SetCBGR16(319, 239, pixel.EncodeCBGR16(0xff, 0, 0))
	if v := i.Order.Uint16(dev.mem[239*640+319*2:]); v != 0x001f {
		t.Errorf("expected write to reach device memory, got %#04x", v)
	}
	if s := fb.Snapshot(); s.At(319, 239) != (pixel.CBGR16{V: 0x001f}) {
		t.Errorf("snapshot pixel is %v", s.At(319, 239))
	}

	if err = fb.Close(); err != nil {
		t.Fatal(err)
	}
	if dev.unmapped != 1 || dev.closed != 1 {
		t.Errorf("expected one unmap and one close, got %d and %d", dev.unmapped, dev.closed)
	}
	if err = fb.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed on second close, got %v", err)
	}
}

func TestMapErrors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		Name   string
		Setup  func(*fakeDevice)
		Kind   error
		Unmaps int
	}{
		{"query", func(d *fakeDevice) { d.queryErr = cause }, ErrQuery, 0},
		{"depth", func(d *fakeDevice) { d.info.BitsPerPixel = 32 }, ErrQuery, 0},
		{"mmap", func(d *fakeDevice) { d.mapErr = cause }, ErrMap, 0},
		{"short", func(d *fakeDevice) { d.shortMaps = true }, ErrMap, 1},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			dev := newFakeDevice(16, 320, 240)
			test.Setup(dev)

			fb, err := Map(dev)
			if fb != nil {
				it.Fatal("expected no framebuffer")
			}
			if !errors.Is(err, test.Kind) {
				it.Errorf("expected %v, got %v", test.Kind, err)
			}
			var derr *DeviceError
			if !errors.As(err, &derr) || derr.Name != "/dev/fake" {
				it.Errorf("expected *DeviceError for /dev/fake, got %#v", err)
			}
			if dev.closed != 1 {
				it.Errorf("expected device to be closed once, closed %d times", dev.closed)
			}
			if dev.unmapped != test.Unmaps {
				it.Errorf("expected %d unmaps, got %d", test.Unmaps, dev.unmapped)
			}
		})
	}

	dev := newFakeDevice(16, 320, 240)
	dev.mapErr = cause
	if _, err := Map(dev); !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped, got %v", err)
	}
}

func TestImageAfterClose(t *testing.T) {
	dev := newFakeDevice(16, 8, 8)
	fb, err := Map(dev)
	if err != nil {
		t.Fatal(err)
	}
	checked, unchecked := fb.Image(true), fb.Image(false)
	snapshot := fb.Snapshot()
	if err = fb.Close(); err != nil {
		t.Fatal(err)
	}

	for _, i := range []*pixel.CBGR16Image{checked, unchecked, fb.Image(true)} {
		if i.Pix != nil || !i.Rect.Empty() {
			t.Errorf("expected an empty writer after close, got %d bytes %s", len(i.Pix), i.Rect)
		}
	}
	checked.Block(2, 2, 0xffff)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected unchecked write after close to panic")
			}
		}()
		unchecked.SetCBGR16(1, 1, 0xffff)
	}()

	if b := snapshot.Bounds(); b != image.Rect(0, 0, 8, 8) {
		t.Errorf("expected snapshot to survive close, got bounds %s", b)
	}
}

func TestCloseUnmapFailure(t *testing.T) {
	dev := newFakeDevice(16, 4, 4)
	fb, err := Map(dev)
	if err != nil {
		t.Fatal(err)
	}
	dev.unmapErr = errors.New("busy")
	if err = fb.Close(); err == nil {
		t.Error("expected unmap error")
	}
	if dev.closed != 1 {
		t.Error("expected device to be closed after unmap failure")
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := Open("/nonexistent/fb99")
	if !errors.Is(err, ErrOpen) {
		t.Errorf("expected ErrOpen, got %v", err)
	}
}
