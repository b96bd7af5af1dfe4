package ocr

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 200, B: 200, A: 255})
	data, err := encodePNG(img)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestNormalizeImageUpscalesSmallCaptures(t *testing.T) {
	got, err := normalizeImage(pngBytes(t, 400, 300))
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds().Dy() != ocrHeight {
		t.Fatalf("got height %d", got.Bounds().Dy())
	}
}

func TestNormalizeImageBoundsLargeCaptures(t *testing.T) {
	got, err := normalizeImage(pngBytes(t, 4000, 1000))
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds().Dx() > maxOCREdge || got.Bounds().Dy() > maxOCREdge {
		t.Fatalf("got %v", got.Bounds())
	}
}

func TestNormalizeImageKeepsMidSizeCaptures(t *testing.T) {
	got, err := normalizeImage(pngBytes(t, 800, 1000))
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds().Dx() != 800 || got.Bounds().Dy() != 1000 {
		t.Fatalf("got %v", got.Bounds())
	}
}

func TestNormalizeImageRejectsGarbage(t *testing.T) {
	if _, err := normalizeImage([]byte("not an image")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestBinarize(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.NRGBA{R: 30, G: 30, B: 30, A: 255})
	img.Set(1, 0, color.NRGBA{R: 220, G: 220, B: 220, A: 255})

	out := binarize(img, 128)
	if c := out.NRGBAAt(0, 0); c.R != 0 {
		t.Fatalf("dark pixel must go black, got %v", c)
	}
	if c := out.NRGBAAt(1, 0); c.R != 255 {
		t.Fatalf("light pixel must go white, got %v", c)
	}
}
