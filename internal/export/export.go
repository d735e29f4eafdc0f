// Package export delivers finished summaries to files or the clipboard.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
)

// FileSink writes the summary to a file, replacing previous content.
type FileSink struct {
	Path string
}

func NewFileSink(path string) *FileSink { return &FileSink{Path: path} }

func (s *FileSink) Write(ctx context.Context, summary string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Path == "" {
		return errors.New("file sink: empty path")
	}
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if !strings.HasSuffix(summary, "\n") {
		summary += "\n"
	}
	if err := os.WriteFile(s.Path, []byte(summary), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// ClipboardSink copies the summary to the system clipboard.
type ClipboardSink struct {
	write func(string) error
}

func NewClipboardSink() *ClipboardSink { return &ClipboardSink{write: clipboard.WriteAll} }

// Available reports whether a clipboard backend exists on this system.
func (s *ClipboardSink) Available() bool { return !clipboard.Unsupported }

func (s *ClipboardSink) Write(ctx context.Context, summary string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.write(summary); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
