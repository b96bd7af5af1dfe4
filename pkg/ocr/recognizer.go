package ocr

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Fragment is one piece of recognized text with the backend's confidence in
// it, scaled to [0,1].
type Fragment struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Recognizer converts raw image bytes into text fragments. Implementations
// wrap a concrete backend (Tesseract today); which one is used is decided at
// construction time.
type Recognizer interface {
	Recognize(ctx context.Context, imageBytes []byte) ([]Fragment, error)
}

// PlaceholderText is the deterministic fragment text emitted when no backend
// is available. The odds parser extracts nothing from it, by construction.
const PlaceholderText = "OCR not available"

const placeholderConfidence = 0.1

// PlaceholderFragments is what callers get when recognition cannot run.
func PlaceholderFragments() []Fragment {
	return []Fragment{{Text: PlaceholderText, Confidence: placeholderConfidence}}
}

// Noop is the null backend: it recognizes nothing and always degrades to the
// placeholder fragment. Used when Tesseract is not installed or disabled.
type Noop struct{}

func (Noop) Recognize(ctx context.Context, imageBytes []byte) ([]Fragment, error) {
	return PlaceholderFragments(), nil
}

// RecognizeOrPlaceholder runs the recognizer and converts any failure into the
// placeholder fragment. Extraction stays best-effort: a dead backend or a bad
// image must never abort a batch pass.
func RecognizeOrPlaceholder(ctx context.Context, r Recognizer, imageBytes []byte) []Fragment {
	if r == nil {
		return PlaceholderFragments()
	}
	frags, err := r.Recognize(ctx, imageBytes)
	if err != nil {
		logrus.WithError(err).Warn("recognition failed, degrading to placeholder")
		return PlaceholderFragments()
	}
	if len(frags) == 0 {
		return PlaceholderFragments()
	}
	return frags
}

// JoinFragments concatenates fragment texts for the text-level parser,
// skipping fragments below the confidence floor.
func JoinFragments(frags []Fragment, minConfidence float64) string {
	out := ""
	for _, f := range frags {
		if f.Confidence < minConfidence {
			continue
		}
		if f.Text == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += f.Text
	}
	return out
}
