package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

var errUnsupportedImage = errors.New("unsupported pdf image")

// pdfImage is one image XObject placed on a page.
type pdfImage struct {
	name       string
	value      pdf.Value
	width      int
	height     int
	bits       int
	components int
	filter     string
}

// recognizePage OCRs every image XObject on a page that has no text layer.
// Images the reader cannot decode are skipped.
func (e *Extractor) recognizePage(ctx context.Context, p pdf.Page, jpegs *jpegIndex) (string, error) {
	var out []string
	for _, img := range pageImages(p) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		encoded, err := img.encode(jpegs)
		if err != nil {
			continue
		}
		text, err := e.recognizer.Recognize(ctx, encoded)
		if err != nil {
			return "", fmt.Errorf("ocr image %s: %w", img.name, err)
		}
		if text != "" {
			out = append(out, text)
		}
	}
	return strings.Join(out, "\n"), nil
}

func pageImages(p pdf.Page) []pdfImage {
	xobjects := p.Resources().Key("XObject")
	if xobjects.Kind() != pdf.Dict {
		return nil
	}
	var images []pdfImage
	for _, name := range xobjects.Keys() {
		v := xobjects.Key(name)
		if v.Kind() != pdf.Stream || v.Key("Subtype").Name() != "Image" {
			continue
		}
		images = append(images, pdfImage{
			name:       name,
			value:      v,
			width:      int(v.Key("Width").Int64()),
			height:     int(v.Key("Height").Int64()),
			bits:       int(v.Key("BitsPerComponent").Int64()),
			components: colorComponents(v.Key("ColorSpace")),
			filter:     singleFilter(v.Key("Filter")),
		})
	}
	return images
}

// singleFilter names the only filter of a stream, "" for none and "?" for a
// chain the OCR path does not handle.
func singleFilter(v pdf.Value) string {
	switch v.Kind() {
	case pdf.Null:
		return ""
	case pdf.Name:
		return v.Name()
	case pdf.Array:
		if v.Len() == 1 {
			return v.Index(0).Name()
		}
	}
	return "?"
}

func colorComponents(cs pdf.Value) int {
	name := cs.Name()
	if cs.Kind() == pdf.Array && cs.Len() > 0 {
		name = cs.Index(0).Name()
		if name == "ICCBased" && cs.Len() > 1 {
			return int(cs.Index(1).Key("N").Int64())
		}
	}
	switch name {
	case "DeviceGray", "CalGray":
		return 1
	case "DeviceRGB", "CalRGB":
		return 3
	}
	return 0
}

// encode returns image bytes the recognizer accepts: JPEG streams as stored,
// raw samples re-encoded as PNG.
func (img pdfImage) encode(jpegs *jpegIndex) ([]byte, error) {
	if img.width <= 0 || img.height <= 0 {
		return nil, errUnsupportedImage
	}
	switch img.filter {
	case "DCTDecode":
		return jpegs.take(img.value.Key("Length").Int64(), img.width, img.height)
	case "", "FlateDecode":
		samples, err := readStream(img.value)
		if err != nil {
			return nil, err
		}
		decoded, err := img.decodeSamples(samples)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, decoded); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, errUnsupportedImage
}

// readStream reads a decoded stream. The pdf reader panics on filters and
// predictors it does not implement.
func readStream(v pdf.Value) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errUnsupportedImage, r)
		}
	}()
	rc := v.Reader()
	defer rc.Close()
	return io.ReadAll(rc)
}

func (img pdfImage) decodeSamples(samples []byte) (image.Image, error) {
	switch {
	case img.components == 1 && img.bits == 8:
		if len(samples) < img.width*img.height {
			return nil, errUnsupportedImage
		}
		g := image.NewGray(image.Rect(0, 0, img.width, img.height))
		copy(g.Pix, samples)
		return g, nil
	case img.components == 1 && img.bits == 1:
		stride := (img.width + 7) / 8
		if len(samples) < stride*img.height {
			return nil, errUnsupportedImage
		}
		g := image.NewGray(image.Rect(0, 0, img.width, img.height))
		for y := 0; y < img.height; y++ {
			for x := 0; x < img.width; x++ {
				if samples[y*stride+x/8]&(0x80>>(x%8)) != 0 {
					g.SetGray(x, y, color.Gray{Y: 0xff})
				}
			}
		}
		return g, nil
	case img.components == 3 && img.bits == 8:
		if len(samples) < img.width*img.height*3 {
			return nil, errUnsupportedImage
		}
		rgba := image.NewRGBA(image.Rect(0, 0, img.width, img.height))
		for i, j := 0, 0; j < img.width*img.height*3; i, j = i+4, j+3 {
			rgba.Pix[i] = samples[j]
			rgba.Pix[i+1] = samples[j+1]
			rgba.Pix[i+2] = samples[j+2]
			rgba.Pix[i+3] = 0xff
		}
		return rgba, nil
	}
	return nil, errUnsupportedImage
}

// jpegIndex locates DCTDecode streams in the raw file. The pdf reader only
// exposes decoded streams, and a DCT stream's raw bytes are the JPEG itself.
type jpegIndex struct {
	data   []byte
	starts []int
	used   map[int]bool
}

func newJPEGIndex(data []byte) *jpegIndex {
	ix := &jpegIndex{data: data, used: make(map[int]bool)}
	kw := []byte("stream")
	for off := 0; ; {
		i := bytes.Index(data[off:], kw)
		if i < 0 {
			break
		}
		pos := off + i + len(kw)
		off = pos
		switch {
		case bytes.HasPrefix(data[pos:], []byte("\r\n")):
			pos += 2
		case bytes.HasPrefix(data[pos:], []byte("\n")):
			pos++
		default:
			continue
		}
		if bytes.HasPrefix(data[pos:], []byte{0xff, 0xd8}) {
			ix.starts = append(ix.starts, pos)
		}
	}
	return ix
}

// take returns the JPEG stream of the given length whose header matches the
// image size. Unused streams are preferred; an XObject shared by several
// pages matches its stream again.
func (ix *jpegIndex) take(length int64, width, height int) ([]byte, error) {
	if length <= 0 {
		return nil, errUnsupportedImage
	}
	var reused []byte
	for _, start := range ix.starts {
		end := start + int(length)
		if end > len(ix.data) {
			continue
		}
		if !bytes.HasPrefix(bytes.TrimLeft(ix.data[end:], "\r\n \t"), []byte("endstream")) {
			continue
		}
		blob := ix.data[start:end]
		cfg, err := jpeg.DecodeConfig(bytes.NewReader(blob))
		if err != nil || cfg.Width != width || cfg.Height != height {
			continue
		}
		if !ix.used[start] {
			ix.used[start] = true
			return blob, nil
		}
		if reused == nil {
			reused = blob
		}
	}
	if reused != nil {
		return reused, nil
	}
	return nil, errUnsupportedImage
}
