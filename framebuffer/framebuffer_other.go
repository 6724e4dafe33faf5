//go:build !linux

package framebuffer

func Open(name string) (*Framebuffer, error) {
	return nil, &DeviceError{Kind: ErrOpen, Name: name, Err: ErrNotSupported}
}
