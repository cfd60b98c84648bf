package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"pinhole3d/internal/compositor"
)

// Config holds the output settings of a batch run.
type Config struct {
	OutputDir string
	Format    string
	Workers   int
	Thumb     int // longest side of an extra thumbnail per frame, 0 for none
}

// RenderFunc composes frame i. The returned image may be reused by the next
// call, it is copied before being handed to a worker.
type RenderFunc func(i int) (*image.RGBA, compositor.Stats, error)

// Result holds the outcome of one frame.
type Result struct {
	Frame   int
	Path    string
	Thumb   string
	Drawn   int
	Culled  int
	Success bool
	Error   string
}

type job struct {
	frame int
	img   *image.RGBA
	stats compositor.Stats
}

// Run renders frames 0..total-1 in order on the calling goroutine and encodes
// them with a pool of cfg.Workers writers.
func Run(cfg Config, total int, render RenderFunc) []Result {
	results := make([]Result, total)
	var processed atomic.Int64

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		for i := range results {
			results[i] = Result{Frame: i, Error: err.Error()}
		}
		return results
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f frames/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Writer pool
	workers := max(cfg.Workers, 1)
	jobs := make(chan job, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.frame] = writeFrame(cfg, j)
				processed.Add(1)
			}
		}()
	}

	// Compose sequentially; the scene is not safe for concurrent use
	for i := 0; i < total; i++ {
		img, stats, err := render(i)
		if err != nil {
			results[i] = Result{Frame: i, Error: err.Error()}
			processed.Add(1)
			continue
		}
		jobs <- job{frame: i, img: cloneRGBA(img), stats: stats}
	}
	close(jobs)

	wg.Wait()
	close(done)

	return results
}

func writeFrame(cfg Config, j job) Result {
	res := Result{Frame: j.frame, Drawn: j.stats.Drawn, Culled: j.stats.Culled}
	res.Path = filepath.Join(cfg.OutputDir, FrameName(j.frame, cfg.Format))

	if err := writeImage(res.Path, j.img, cfg.Format); err != nil {
		res.Error = err.Error()
		return res
	}

	if cfg.Thumb > 0 {
		res.Thumb = filepath.Join(cfg.OutputDir, ThumbName(j.frame, cfg.Format))
		if err := writeImage(res.Thumb, Thumbnail(j.img, cfg.Thumb), cfg.Format); err != nil {
			res.Error = fmt.Sprintf("thumbnail: %v", err)
			return res
		}
	}

	res.Success = true
	return res
}

func writeImage(path string, img image.Image, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := &image.RGBA{
		Pix:    make([]uint8, len(src.Pix)),
		Stride: src.Stride,
		Rect:   src.Rect,
	}
	copy(dst.Pix, src.Pix)
	return dst
}
