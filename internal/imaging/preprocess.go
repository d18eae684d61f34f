package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// maxOCRDimension caps the longer edge before OCR; card photos straight off a
// phone camera are far larger than recognition needs.
const maxOCRDimension = 1600

// Downscale resizes img so its longer edge is at most maxOCRDimension,
// preserving aspect ratio. Smaller images pass through untouched.
func Downscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	long := w
	if h > long {
		long = h
	}
	if long <= maxOCRDimension {
		return img
	}

	scale := float64(maxOCRDimension) / float64(long)
	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// Grayscale converts img to 8-bit grayscale.
func Grayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x-b.Min.X, y-b.Min.Y, color.GrayModel.Convert(img.At(x, y)))
		}
	}
	return dst
}

// Rotate returns img rotated clockwise by angle, which must be one of
// 0, 90, 180 or 270. Any other angle returns img unchanged.
func Rotate(img image.Image, angle int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch angle {
	case 90:
		dst := image.NewRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.Set(h-1-y, x, img.At(b.Min.X+x, b.Min.Y+y))
			}
		}
		return dst
	case 180:
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.Set(w-1-x, h-1-y, img.At(b.Min.X+x, b.Min.Y+y))
			}
		}
		return dst
	case 270:
		dst := image.NewRGBA(image.Rect(0, 0, h, w))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dst.Set(y, w-1-x, img.At(b.Min.X+x, b.Min.Y+y))
			}
		}
		return dst
	}
	return img
}
