package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "golang.org/x/image/webp"
)

var frameExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ImageSource reads frames from image files, sorted by name.
type ImageSource struct {
	paths []string
}

// NewImageSource accepts a single image or a directory of frames.
func NewImageSource(path string) (*ImageSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return &ImageSource{paths: []string{path}}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if frameExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(path, entry.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no frames in %s", path)
	}
	sort.Strings(paths)
	return &ImageSource{paths: paths}, nil
}

func (s *ImageSource) PageCount() int {
	return len(s.paths)
}

func (s *ImageSource) GetPageDimensions(index int) (float64, float64, error) {
	if index < 0 || index >= len(s.paths) {
		return 0, 0, fmt.Errorf("frame %d out of range [0, %d)", index, len(s.paths))
	}
	return imageSize(s.paths[index])
}

func (s *ImageSource) RenderPage(index int, _ int) (image.Image, error) {
	if index < 0 || index >= len(s.paths) {
		return nil, fmt.Errorf("frame %d out of range [0, %d)", index, len(s.paths))
	}
	return decodeFile(s.paths[index])
}

func (s *ImageSource) Close() error {
	return nil
}

// TemplateSource addresses Count frames by FrameName without listing the
// directory. Missing files surface as load errors for that index only.
type TemplateSource struct {
	Dir   string
	Count int
}

func (s *TemplateSource) PageCount() int {
	return s.Count
}

func (s *TemplateSource) GetPageDimensions(index int) (float64, float64, error) {
	return imageSize(FrameName(s.Dir, index))
}

func (s *TemplateSource) RenderPage(index int, _ int) (image.Image, error) {
	if index < 0 || index >= s.Count {
		return nil, fmt.Errorf("frame %d out of range [0, %d)", index, s.Count)
	}
	return decodeFile(FrameName(s.Dir, index))
}

func (s *TemplateSource) Close() error {
	return nil
}

func imageSize(path string) (float64, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode %s: %w", path, err)
	}
	return float64(cfg.Width), float64(cfg.Height), nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
