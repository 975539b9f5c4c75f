package cvd

import (
	"context"
	"image"
	"image/color"

	"golang.org/x/sync/errgroup"

	"github.com/marianadeem755/VisionChroma-pro/internal/colour"
)

// SimulateImage returns a copy of img as perceived under d. Rows are split
// across workers; each worker memoises colours it has already simulated.
// Transparent pixels are composited against white first.
func (s *Simulator) SimulateImage(ctx context.Context, img image.Image, d Deficiency) (*image.RGBA, error) {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	if bounds.Empty() {
		return out, nil
	}

	rows := bounds.Dy()
	band := max((rows+s.workers-1)/s.workers, 1)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for y0 := bounds.Min.Y; y0 < bounds.Max.Y; y0 += band {
		y1 := min(y0+band, bounds.Max.Y)
		g.Go(func() error {
			cache := make(map[uint32]colour.Color)
			for y := y0; y < y1; y++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				for x := bounds.Min.X; x < bounds.Max.X; x++ {
					c := colour.FromColor(img.At(x, y))
					sim, ok := cache[c.Key()]
					if !ok {
						sim = s.SimulateColor(c, d).Simulated
						cache[c.Key()] = sim
					}
					out.SetRGBA(x, y, color.RGBA{R: sim.R, G: sim.G, B: sim.B, A: 255})
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
