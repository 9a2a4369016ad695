package source

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/skip2/go-qrcode"
)

// FixturePattern is the name of a generated fixture frame, numbered from 1.
const FixturePattern = "rdframe_%04d.png"

var (
	fixtureBackground = color.RGBA{24, 28, 40, 255}
	fixtureBar        = color.RGBA{230, 120, 40, 255}
)

// FixtureSource synthesizes Count frames. Every frame carries its 1-based
// number as a QR code and a bar whose length is proportional to the index,
// so a recorded preview can be checked frame by frame.
type FixtureSource struct {
	Count         int
	Width, Height int
}

func NewFixtureSource(count, width, height int) (*FixtureSource, error) {
	if count <= 0 {
		return nil, fmt.Errorf("fixture count must be > 0, got %d", count)
	}
	if width < 32 || height < 32 {
		return nil, fmt.Errorf("fixture size %dx%d is too small", width, height)
	}
	return &FixtureSource{Count: count, Width: width, Height: height}, nil
}

func (s *FixtureSource) PageCount() int {
	return s.Count
}

func (s *FixtureSource) GetPageDimensions(index int) (float64, float64, error) {
	if index < 0 || index >= s.Count {
		return 0, 0, fmt.Errorf("frame %d out of range [0, %d)", index, s.Count)
	}
	return float64(s.Width), float64(s.Height), nil
}

func (s *FixtureSource) RenderPage(index int, _ int) (image.Image, error) {
	if index < 0 || index >= s.Count {
		return nil, fmt.Errorf("frame %d out of range [0, %d)", index, s.Count)
	}
	return FixtureFrame(index, s.Count, s.Width, s.Height)
}

func (s *FixtureSource) Close() error {
	return nil
}

// FixtureFrame draws frame index of n.
func FixtureFrame(index, n, width, height int) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{fixtureBackground}, image.Point{}, draw.Src)

	q, err := qrcode.New(fmt.Sprintf("%d", index+1), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr для кадра %d: %w", index+1, err)
	}
	side := min(width, height) / 2
	code := q.Image(side)
	at := image.Pt((width-side)/2, (height-side)/2)
	draw.Draw(img, image.Rectangle{Min: at, Max: at.Add(image.Pt(side, side))}, code, image.Point{}, draw.Src)

	barH := max(2, height/40)
	barW := width
	if n > 1 {
		barW = width * index / (n - 1)
	}
	bar := image.Rect(0, height-barH, barW, height)
	draw.Draw(img, bar, &image.Uniform{fixtureBar}, image.Point{}, draw.Src)
	return img, nil
}

// WriteFixtures writes n PNG frames into dir and returns their paths.
func WriteFixtures(dir string, n, width, height int) ([]string, error) {
	if _, err := NewFixtureSource(n, width, height); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		img, err := FixtureFrame(i, n, width, height)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, fmt.Sprintf(FixturePattern, i+1))
		if err := encodePNG(path, img); err != nil {
			return paths, fmt.Errorf("запись %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func encodePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
