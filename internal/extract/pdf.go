package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// readPDF returns the text layer of every page. Pages without one are
// OCRed from their images when a recognizer is configured, so scanned
// documents keep one entry per page. When no page yields text the
// whole-document reader is tried as a single page.
func (e *Extractor) readPDF(ctx context.Context, data []byte) ([]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	pages := make([]string, 0, r.NumPage())
	found := false
	var jpegs *jpegIndex
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("read pdf page %d: %w", i, err)
		}
		if text == "" && e.recognizer != nil {
			if jpegs == nil {
				jpegs = newJPEGIndex(data)
			}
			if text, err = e.recognizePage(ctx, p, jpegs); err != nil {
				return nil, fmt.Errorf("ocr pdf page %d: %w", i, err)
			}
		}
		if text != "" {
			found = true
		}
		pages = append(pages, text)
	}
	if found {
		return pages, nil
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("read pdf text: %w", err)
	}
	out, err := io.ReadAll(plain)
	if err != nil {
		return nil, err
	}
	return []string{string(out)}, nil
}
