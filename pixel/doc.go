// Package pixel implements the 16-bit color codec, the palette and the pixel writer used by
// the framebuffer HAL.
//
// The color and image types are compatible with Go's native [color.Color] and
// [image.Image] / [draw.Image] interfaces, so the mapped framebuffer can also be
// inspected with the standard library.
package pixel
