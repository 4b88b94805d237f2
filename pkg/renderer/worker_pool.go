package renderer

import (
	"runtime"
	"sync"

	"github.com/lumenforge/pathtracer/internal/rng"
	"github.com/lumenforge/pathtracer/pkg/core"
	"github.com/lumenforge/pathtracer/pkg/integrator"
	"github.com/lumenforge/pathtracer/pkg/scene"
)

// Framebuffer holds one accumulated, tone-mapped color per pixel,
// row-major, width*height entries. Each pixel is written by exactly one
// worker, exactly once, so no locking is required during Render.
type Framebuffer struct {
	Width, Height int
	Pixels        []core.Color
}

func newFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{Width: width, Height: height, Pixels: make([]core.Color, width*height)}
}

func (fb *Framebuffer) set(x, y int, c core.Color) {
	fb.Pixels[y*fb.Width+x] = c
}

// At returns the tone-mapped color at (x, y).
func (fb *Framebuffer) At(x, y int) core.Color {
	return fb.Pixels[y*fb.Width+x]
}

// Render drives a work-stealing pool of runtime.NumCPU() workers over the
// scene's tiles, each pulling the next available tile from a shared
// channel until the channel is drained. Each pixel is seeded with its
// own deterministic LCG instance (seed = y*width + x) so the output is
// reproducible independent of however tiles happen to interleave across
// workers.
func Render(scn *scene.Scene) *Framebuffer {
	fb := newFramebuffer(scn.Width, scn.Height)

	tiles := BuildTiles(scn.Width, scn.Height)
	tileQueue := make(chan Tile, len(tiles))
	for _, t := range tiles {
		tileQueue <- t
	}
	close(tileQueue)

	numWorkers := runtime.NumCPU()
	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for tile := range tileQueue {
				renderTile(scn, fb, tile)
			}
		}()
	}
	wg.Wait()

	return fb
}

func renderTile(scn *scene.Scene, fb *Framebuffer, tile Tile) {
	bounds := tile.Bounds
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			iter := int64(y*scn.Width + x)
			sampler := rng.New(iter)

			var accum core.Color
			for s := 0; s < scn.Samples; s++ {
				u, v := sampler.Vec2()
				ray := PrimaryRay(scn.Camera, scn.Width, scn.Height, float64(x)+u, float64(y)+v)
				accum = accum.Add(integrator.Trace(scn, ray, scn.RayDepth, sampler))
			}
			avg := accum.Multiply(1.0 / float64(scn.Samples))
			fb.set(x, y, ToneMap(avg))
		}
	}
}
