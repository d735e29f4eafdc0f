// Package tesseract recognizes text in images through the Tesseract engine.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// FallbackLanguage is used when the configured languages cannot be loaded.
const FallbackLanguage = "eng"

// Recognizer runs OCR with one short-lived client per call.
type Recognizer struct {
	languages     []string
	clientFactory func() *gosseract.Client
}

// New creates a Recognizer for the given Tesseract language codes, e.g. ara and eng.
func New(languages []string) *Recognizer {
	if len(languages) == 0 {
		languages = []string{"ara", FallbackLanguage}
	}
	return &Recognizer{languages: languages, clientFactory: gosseract.NewClient}
}

func (r *Recognizer) Name() string { return "tesseract" }

// Recognize returns the text in image. If the configured languages fail it
// retries with English only.
func (r *Recognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	text, err := r.recognize(ctx, image, r.languages)
	if err == nil {
		return text, nil
	}
	if len(r.languages) == 1 && r.languages[0] == FallbackLanguage {
		return "", err
	}
	text, ferr := r.recognize(ctx, image, []string{FallbackLanguage})
	if ferr != nil {
		return "", fmt.Errorf("%w (fallback %s: %v)", err, FallbackLanguage, ferr)
	}
	return text, nil
}

func (r *Recognizer) recognize(ctx context.Context, image []byte, languages []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c := r.clientFactory()
	defer c.Close()
	if err := c.SetLanguage(languages...); err != nil {
		return "", fmt.Errorf("set languages: %w", err)
	}
	if err := c.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := c.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text with %s: %w", strings.Join(languages, "+"), err)
	}
	return strings.TrimSpace(text), nil
}
