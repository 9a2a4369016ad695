package source

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestFrameName(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "frames/rdframe_0001.webp"},
		{9, "frames/rdframe_0010.webp"},
		{124, "frames/rdframe_0125.webp"},
	}
	for _, tt := range tests {
		if got := filepath.ToSlash(FrameName("frames", tt.index)); got != tt.want {
			t.Errorf("FrameName(%d) = %s, want %s", tt.index, got, tt.want)
		}
	}
}

func TestImageSourceSortsFrames(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), 20, 10)
	writePNG(t, filepath.Join(dir, "a.png"), 40, 30)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := NewImageSource(dir)
	if err != nil {
		t.Fatal(err)
	}
	if src.PageCount() != 2 {
		t.Fatalf("PageCount = %d, want 2", src.PageCount())
	}
	w, h, err := src.GetPageDimensions(0)
	if err != nil {
		t.Fatal(err)
	}
	if w != 40 || h != 30 {
		t.Errorf("first frame = %vx%v, want a.png 40x30", w, h)
	}
	if _, err := src.RenderPage(5, 0); err == nil {
		t.Error("expected out of range error")
	}
}

func TestImageSourceEmptyDir(t *testing.T) {
	if _, err := NewImageSource(t.TempDir()); err == nil {
		t.Error("expected error for a directory without frames")
	}
}

func TestPreloadRecordsMissingFrames(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 5; i++ {
		if i == 2 {
			continue
		}
		writePNG(t, filepath.Join(dir, fmt.Sprintf("rdframe_%04d.webp", i+1)), 8, 8)
	}
	// PNG bytes behind a .webp name still decode: the format is sniffed.
	src := &TemplateSource{Dir: dir, Count: 5}

	frames := Preload(context.Background(), src, 3)
	err := frames.Wait()
	if err == nil {
		t.Fatal("expected an error for the missing frame")
	}
	t.Logf("preload error: %v", err)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap ErrNotExist: %v", err)
	}

	if frames.Len() != 5 || frames.Loaded() != 4 {
		t.Errorf("Len=%d Loaded=%d, want 5 and 4", frames.Len(), frames.Loaded())
	}
	if _, ok := frames.Frame(2); ok {
		t.Error("frame 2 should be unloaded")
	}
	if _, ok := frames.Frame(4); !ok {
		t.Error("frame 4 should be loaded")
	}
	if _, ok := frames.Frame(-1); ok {
		t.Error("negative index should not be loaded")
	}
}

type slowSource struct {
	n     int
	delay time.Duration
}

func (s slowSource) PageCount() int { return s.n }
func (s slowSource) GetPageDimensions(int) (float64, float64, error) {
	return 1, 1, nil
}
func (s slowSource) RenderPage(int, int) (image.Image, error) {
	time.Sleep(s.delay)
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}
func (s slowSource) Close() error { return nil }

func TestPreloadCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	frames := Preload(ctx, slowSource{n: 100, delay: 5 * time.Millisecond}, 2)
	if frames.Err() != nil {
		t.Error("Err should be nil while loading")
	}
	cancel()

	select {
	case <-frames.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("preload did not stop after cancel")
	}
	if !errors.Is(frames.Err(), context.Canceled) {
		t.Errorf("Err = %v, want context.Canceled", frames.Err())
	}
	if frames.Loaded() == 100 {
		t.Error("cancel should stop before every frame loads")
	}
}

func TestOpenPicksImageSource(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "one.png"), 4, 4)
	src, err := Open(filepath.Join(dir, "one.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	if _, ok := src.(*ImageSource); !ok {
		t.Errorf("Open returned %T", src)
	}
}
