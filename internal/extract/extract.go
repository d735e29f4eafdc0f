// Package extract turns source files into plain-text documents.
package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/minio/highwayhash"

	"docsum/internal/domain"
)

var (
	// ErrUnsupported is returned for formats no extractor handles.
	ErrUnsupported = errors.New("unsupported document format")
	// ErrNoText is returned when a document holds no readable text.
	ErrNoText = errors.New("no text found in document")
)

// DefaultPageMarker prefixes each page of a multi-page document.
const DefaultPageMarker = "--- صفحة %d ---"

var hashKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// Recognizer reads text from an encoded image.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Options configures an Extractor.
type Options struct {
	// PageMarker is a fmt pattern taking the 1-based page number.
	PageMarker string
}

// Extractor dispatches on document kind.
type Extractor struct {
	recognizer Recognizer
	pageMarker string
}

// New creates an Extractor. A nil recognizer disables image input.
func New(recognizer Recognizer, opts Options) *Extractor {
	if opts.PageMarker == "" {
		opts.PageMarker = DefaultPageMarker
	}
	return &Extractor{recognizer: recognizer, pageMarker: opts.PageMarker}
}

// Extract reads data as the kind implied by source and returns its text.
func (e *Extractor) Extract(ctx context.Context, source string, data []byte) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return domain.Document{}, err
	}
	kind, err := DetectKind(source, data)
	if err != nil {
		return domain.Document{}, err
	}
	var pages []string
	switch kind {
	case domain.KindText:
		pages = []string{decodeText(data)}
	case domain.KindPDF:
		pages, err = e.readPDF(ctx, data)
	case domain.KindImage:
		pages, err = e.readImage(ctx, data)
	case domain.KindDOCX:
		pages, err = readDOCX(data)
	case domain.KindXLSX:
		pages, err = readXLSX(data)
	case domain.KindXLS:
		pages, err = readXLS(data)
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("extract %s: %w", source, err)
	}
	if !trimPages(pages) {
		return domain.Document{}, fmt.Errorf("extract %s: %w", source, ErrNoText)
	}
	id, err := DocumentID(data)
	if err != nil {
		return domain.Document{}, err
	}
	return domain.Document{
		ID:      id,
		Source:  source,
		Kind:    kind,
		Pages:   pages,
		Content: e.joinPages(pages),
	}, nil
}

func (e *Extractor) readImage(ctx context.Context, data []byte) ([]string, error) {
	if e.recognizer == nil {
		return nil, fmt.Errorf("no OCR recognizer configured: %w", ErrUnsupported)
	}
	text, err := e.recognizer.Recognize(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("ocr: %w", err)
	}
	return []string{text}, nil
}

// joinPages marks each page when there is more than one.
func (e *Extractor) joinPages(pages []string) string {
	if len(pages) == 1 {
		return pages[0]
	}
	var b strings.Builder
	for i, p := range pages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(fmt.Sprintf(e.pageMarker, i+1))
		b.WriteByte('\n')
		b.WriteString(p)
	}
	return b.String()
}

// trimPages trims every page in place and reports whether any text remains.
// Empty pages are kept so page numbers stay aligned.
func trimPages(pages []string) bool {
	found := false
	for i, p := range pages {
		pages[i] = strings.TrimSpace(p)
		if pages[i] != "" {
			found = true
		}
	}
	return found
}

var extKinds = map[string]domain.Kind{
	".txt":  domain.KindText,
	".md":   domain.KindText,
	".text": domain.KindText,
	".pdf":  domain.KindPDF,
	".png":  domain.KindImage,
	".jpg":  domain.KindImage,
	".jpeg": domain.KindImage,
	".tif":  domain.KindImage,
	".tiff": domain.KindImage,
	".bmp":  domain.KindImage,
	".gif":  domain.KindImage,
	".webp": domain.KindImage,
	".docx": domain.KindDOCX,
	".xlsx": domain.KindXLSX,
	".xls":  domain.KindXLS,
}

// DetectKind picks the document kind from the source extension, falling
// back to content sniffing.
func DetectKind(source string, data []byte) (domain.Kind, error) {
	if k, ok := extKinds[strings.ToLower(path.Ext(source))]; ok {
		return k, nil
	}
	ct := http.DetectContentType(data)
	switch {
	case strings.HasPrefix(ct, "application/pdf"):
		return domain.KindPDF, nil
	case strings.HasPrefix(ct, "image/"):
		return domain.KindImage, nil
	case strings.HasPrefix(ct, "application/zip"):
		return sniffZip(data)
	case strings.HasPrefix(ct, "text/plain"):
		return domain.KindText, nil
	}
	return "", fmt.Errorf("%s (%s): %w", source, ct, ErrUnsupported)
}

func sniffZip(data []byte) (domain.Kind, error) {
	switch {
	case bytes.Contains(data, []byte("word/document.xml")):
		return domain.KindDOCX, nil
	case bytes.Contains(data, []byte("xl/workbook.xml")):
		return domain.KindXLSX, nil
	}
	return "", fmt.Errorf("zip archive: %w", ErrUnsupported)
}

// DocumentID returns a stable content hash for data.
func DocumentID(data []byte) (string, error) {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		return "", err
	}
	if _, err := h.Write(data); err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
