package assetloader

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Decode decodes an encoded image. If either side exceeds maxSize the image
// is downscaled to fit, keeping its aspect ratio; maxSize <= 0 disables
// scaling. width and height are always the natural (pre-scale) dimensions.
func Decode(data []byte, maxSize int) (img image.Image, width, height int, err error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	width, height = bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, 0, 0, fmt.Errorf("failed to decode image: empty %s", format)
	}

	if maxSize > 0 && (width > maxSize || height > maxSize) {
		return scaleToFit(src, maxSize), width, height, nil
	}
	return src, width, height, nil
}

// scaleToFit shrinks src so its longer side is maxSize
func scaleToFit(src image.Image, maxSize int) image.Image {
	bounds := src.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()

	scale := float64(maxSize) / float64(srcWidth)
	if s := float64(maxSize) / float64(srcHeight); s < scale {
		scale = s
	}

	newWidth := int(float64(srcWidth) * scale)
	newHeight := int(float64(srcHeight) * scale)
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dstRect := image.Rect(0, 0, newWidth, newHeight)
	scaled := image.NewRGBA(dstRect)
	xdraw.ApproxBiLinear.Scale(scaled, dstRect, src, bounds, draw.Over, nil)
	return scaled
}
