package source

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Frames is the preloaded image cache. Slots are written once by the
// preload workers and only read afterwards.
type Frames struct {
	mu     sync.RWMutex
	images []image.Image
	loaded int

	done chan struct{}
	err  error
}

// Preload starts loading every frame of src in the background with at most
// workers concurrent loads. A frame that fails stays unloaded; the failures
// are joined into Err once Done is closed.
func Preload(ctx context.Context, src Source, workers int) *Frames {
	if workers <= 0 {
		workers = 1
	}
	n := src.PageCount()
	f := &Frames{
		images: make([]image.Image, n),
		done:   make(chan struct{}),
	}

	go func() {
		defer close(f.done)

		var (
			errMu sync.Mutex
			errs  []error
		)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for i := 0; i < n; i++ {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				img, err := src.RenderPage(i, DefaultDPI)
				if err != nil {
					errMu.Lock()
					errs = append(errs, fmt.Errorf("frame %d: %w", i, err))
					errMu.Unlock()
					return nil
				}
				f.set(i, img)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			errs = append(errs, err)
		} else if err := ctx.Err(); err != nil {
			errs = append(errs, err)
		}
		f.err = errors.Join(errs...)
	}()
	return f
}

func (f *Frames) set(i int, img image.Image) {
	f.mu.Lock()
	f.images[i] = img
	f.loaded++
	f.mu.Unlock()
}

func (f *Frames) Len() int {
	return len(f.images)
}

// Frame returns the image at 0-based index i if it has been loaded.
func (f *Frames) Frame(i int) (image.Image, bool) {
	if i < 0 || i >= len(f.images) {
		return nil, false
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	img := f.images[i]
	return img, img != nil
}

// Loaded returns the number of frames decoded so far.
func (f *Frames) Loaded() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.loaded
}

// Done is closed when preloading finishes.
func (f *Frames) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until preloading finishes and returns the joined failures.
func (f *Frames) Wait() error {
	<-f.done
	return f.err
}

// Err returns the preload failures, or nil while still loading.
func (f *Frames) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}
