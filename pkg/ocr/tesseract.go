package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract recognizes text via the local Tesseract engine (gosseract
// binding). Two passes run per image: the normalized grayscale capture with
// the full character set, then a binarized digits-focused pass that tends to
// recover odds tokens the first pass smudges.
type Tesseract struct {
	languages string
}

const digitsWhitelist = "0123456789.,:/- "

// NewTesseract builds a Tesseract recognizer. languages is a Tesseract
// language spec like "eng+spa"; empty selects "eng+spa" (odds boards in this
// deployment mix both).
func NewTesseract(languages string) *Tesseract {
	if languages == "" {
		languages = "eng+spa"
	}
	return &Tesseract{languages: languages}
}

func (t *Tesseract) Recognize(ctx context.Context, imageBytes []byte) ([]Fragment, error) {
	gray, err := normalizeImage(imageBytes)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	grayPNG, err := encodePNG(gray)
	if err != nil {
		return nil, err
	}

	frags, err := t.recognizeLines(grayPNG)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Digits pass on the binarized board. Appended as one low-weight fragment;
	// duplicates are harmless to the first-occurrence parser rules.
	binPNG, err := encodePNG(binarize(gray, 210))
	if err == nil {
		if digits := t.recognizeDigits(binPNG); digits != "" {
			frags = append(frags, Fragment{Text: digits, Confidence: 0.5})
		}
	}
	return frags, nil
}

// recognizeLines returns per-line fragments with Tesseract's own confidence,
// dropping lines below the noise floor.
func (t *Tesseract) recognizeLines(png []byte) ([]Fragment, error) {
	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage(t.languages)
	if err := client.SetImageFromBytes(png); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		// Older Tesseract builds reject box iteration for some inputs; fall
		// back to plain text with a nominal confidence.
		text, terr := client.Text()
		if terr != nil {
			return nil, fmt.Errorf("tesseract: %w", terr)
		}
		if text == "" {
			return nil, nil
		}
		return []Fragment{{Text: text, Confidence: 0.6}}, nil
	}
	var frags []Fragment
	for _, box := range boxes {
		conf := box.Confidence / 100
		if conf < 0.3 || box.Word == "" {
			continue
		}
		frags = append(frags, Fragment{Text: box.Word, Confidence: conf})
	}
	return frags, nil
}

func (t *Tesseract) recognizeDigits(png []byte) string {
	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage(t.languages)
	_ = client.SetWhitelist(digitsWhitelist)
	if err := client.SetImageFromBytes(png); err != nil {
		return ""
	}
	text, err := client.Text()
	if err != nil {
		return ""
	}
	return text
}
