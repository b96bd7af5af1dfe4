package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Screenshot bounds for the recognition backend. Small phone screenshots are
// upscaled so glyphs reach a size Tesseract handles well; oversized captures
// are bounded to respect backend payload limits.
const (
	minOCRHeight = 900
	ocrHeight    = 1300
	maxOCREdge   = 2600
)

// normalizeImage decodes raw screenshot bytes and applies the light
// pre-recognition pass: single-channel conversion, contrast enhancement,
// sharpening and dimension bounding.
func normalizeImage(imageBytes []byte) (*image.NRGBA, error) {
	img, err := imaging.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	gray := imaging.Grayscale(img)
	gray = imaging.AdjustContrast(gray, 15)
	gray = imaging.Sharpen(gray, 0.7)
	if gray.Bounds().Dy() < minOCRHeight {
		gray = imaging.Resize(gray, 0, ocrHeight, imaging.Lanczos)
	}
	if gray.Bounds().Dx() > maxOCREdge || gray.Bounds().Dy() > maxOCREdge {
		gray = imaging.Fit(gray, maxOCREdge, maxOCREdge, imaging.Lanczos)
	}
	return gray, nil
}

// binarize performs a simple global threshold on a grayscale image. Odds
// boards are high-contrast tables; a fixed threshold is enough for the
// second recognition pass.
func binarize(img image.Image, threshold uint8) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := img.At(x, y).RGBA()
			gray := uint8((r + g + bb) / 3 >> 8)
			var v uint8 = 255
			if gray <= threshold {
				v = 0
			}
			out.Set(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return out
}

// encodePNG renders an image back to bytes for backends that consume files.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
