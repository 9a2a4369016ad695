package source

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
)

// DefaultDPI is used when rasterizing vector sources.
const DefaultDPI = 96

// Source is an ordered set of frames. Indices are 0-based.
type Source interface {
	PageCount() int
	GetPageDimensions(index int) (width, height float64, err error)
	RenderPage(index int, dpi int) (image.Image, error)
	Close() error
}

// FramePattern is the file name of a sequence frame, numbered from 1.
const FramePattern = "rdframe_%04d.webp"

// FrameName returns the path of the frame at 0-based index i. Files on disk
// are numbered from 1, so index 0 maps to rdframe_0001.webp.
func FrameName(base string, i int) string {
	return filepath.Join(base, fmt.Sprintf(FramePattern, i+1))
}

// Open picks a source by path: a .pdf file becomes a page-per-frame source,
// anything else is treated as an image file or a directory of frames.
func Open(path string) (Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return NewFitzPDFSource(path)
	}
	return NewImageSource(path)
}
