package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
)

// Loader fetches source bytes from local paths or any URL scheme afs supports.
type Loader struct {
	fs afs.Service
}

func NewLoader() *Loader { return &Loader{fs: afs.New()} }

// Load downloads the content of source.
func (l *Loader) Load(ctx context.Context, source string) ([]byte, error) {
	data, err := l.fs.DownloadWithURL(ctx, toURL(source))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", source, err)
	}
	return data, nil
}

// Expand resolves glob patterns in local sources. URLs and patterns without
// matches are passed through unchanged.
func (l *Loader) Expand(sources []string) []string {
	var out []string
	for _, s := range sources {
		if isURL(s) {
			out = append(out, s)
			continue
		}
		matches, _ := filepath.Glob(s)
		if matches == nil {
			matches = []string{s}
		}
		out = append(out, matches...)
	}
	return out
}

func isURL(s string) bool { return strings.Contains(s, "://") }

func toURL(source string) string {
	if isURL(source) {
		return source
	}
	if abs, err := filepath.Abs(source); err == nil {
		source = abs
	}
	return "file://" + filepath.ToSlash(source)
}
