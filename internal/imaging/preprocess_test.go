package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPixel() *image.RGBA {
	// red at (0,0), blue at (1,0)
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{B: 255, A: 255})
	return img
}

func TestRotate(t *testing.T) {
	src := twoPixel()

	t.Run("90 swaps dimensions", func(t *testing.T) {
		got := Rotate(src, 90)
		require.Equal(t, image.Rect(0, 0, 1, 2), got.Bounds())
		r, _, _, _ := got.At(0, 0).RGBA()
		assert.NotZero(t, r) // red pixel moved to top
	})

	t.Run("180 reverses", func(t *testing.T) {
		got := Rotate(src, 180)
		require.Equal(t, src.Bounds(), got.Bounds())
		_, _, b, _ := got.At(0, 0).RGBA()
		assert.NotZero(t, b)
	})

	t.Run("360 rotations compose to identity", func(t *testing.T) {
		got := Rotate(Rotate(src, 180), 180)
		r, _, _, _ := got.At(0, 0).RGBA()
		assert.NotZero(t, r)
	})

	t.Run("zero and unknown angles pass through", func(t *testing.T) {
		assert.Equal(t, image.Image(src), Rotate(src, 0))
		assert.Equal(t, image.Image(src), Rotate(src, 45))
	})
}

func TestDownscale(t *testing.T) {
	t.Run("small image untouched", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(0, 0, 100, 50))
		assert.Equal(t, image.Image(src), Downscale(src))
	})

	t.Run("large image capped at long edge", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(0, 0, 3200, 1600))
		got := Downscale(src)
		assert.Equal(t, 1600, got.Bounds().Dx())
		assert.Equal(t, 800, got.Bounds().Dy())
	})
}

func TestGrayscale(t *testing.T) {
	got := Grayscale(twoPixel())
	assert.Equal(t, image.Rect(0, 0, 2, 1), got.Bounds())
}
