package colour

import (
	"cmp"
	"fmt"
	"image"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
)

// Extraction limits.
const (
	DefaultExtractCount = 8
	MaxExtractCount     = 64
	maxSamples          = 4000
)

// ImageExtractor derives a palette from a screenshot by k-means clustering in
// CIE L*a*b*, so clusters follow perceived colour distance.
type ImageExtractor struct {
	maxIterations int
	convergence   float64
	seed          uint64
}

// NewImageExtractor creates an extractor. The seed makes centroid
// initialisation reproducible.
func NewImageExtractor(seed uint64) *ImageExtractor {
	return &ImageExtractor{
		maxIterations: 20,
		convergence:   0.5,
		seed:          seed,
	}
}

// Extract returns up to count dominant colours, most dominant first, each
// tagged with SourceImage. Transparent pixels are composited against white.
func (e *ImageExtractor) Extract(img image.Image, count int) (*Palette, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if count < 1 || count > MaxExtractCount {
		return nil, fmt.Errorf("colour count must be between 1 and %d, got %d", MaxExtractCount, count)
	}

	samples := sampleColors(img)
	if len(samples) == 0 {
		return nil, fmt.Errorf("no pixels found in image")
	}

	// Few distinct colours: no clustering needed.
	unique := NewPalette(samples...)
	if unique.Len() <= count {
		return withSource(rankByFrequency(unique.Colors(), samples), SourceImage), nil
	}

	points := make([]colorful.Color, len(samples))
	for i, c := range samples {
		points[i] = colorful.Color{R: float64(c.R) / 255.0, G: float64(c.G) / 255.0, B: float64(c.B) / 255.0}
	}

	centroids, sizes := e.cluster(points, count)

	type cluster struct {
		c    Color
		size int
	}
	clusters := make([]cluster, 0, len(centroids))
	for i, c := range centroids {
		if sizes[i] == 0 {
			continue
		}
		r, g, b := c.Clamped().RGB255()
		clusters = append(clusters, cluster{c: RGB(r, g, b), size: sizes[i]})
	}
	slices.SortStableFunc(clusters, func(a, b cluster) int {
		return cmp.Compare(b.size, a.size)
	})

	colors := make([]Color, len(clusters))
	for i, c := range clusters {
		colors[i] = c.c
	}
	return withSource(NewPalette(colors...), SourceImage), nil
}

func withSource(p *Palette, src Source) *Palette {
	for i := range p.Entries {
		p.Entries[i].Source = src
	}
	return p
}

// rankByFrequency orders colours by how often they occur in samples.
func rankByFrequency(colors, samples []Color) *Palette {
	freq := make(map[uint32]int, len(colors))
	for _, s := range samples {
		freq[s.Key()]++
	}
	ranked := slices.Clone(colors)
	slices.SortStableFunc(ranked, func(a, b Color) int {
		return cmp.Compare(freq[b.Key()], freq[a.Key()])
	})
	return NewPalette(ranked...)
}

// sampleColors reads pixels on a regular grid, capped at maxSamples.
func sampleColors(img image.Image) []Color {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total <= 0 {
		return nil
	}

	step := 1
	if total > maxSamples {
		step = max(int(math.Sqrt(float64(total)/float64(maxSamples))), 1)
	}

	out := make([]Color, 0, min(total, maxSamples))
	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			out = append(out, FromColor(img.At(x, y)))
			if len(out) >= maxSamples {
				return out
			}
		}
	}
	return out
}

// cluster runs k-means with k-means++ seeding and returns the centroids and
// their member counts.
func (e *ImageExtractor) cluster(points []colorful.Color, k int) ([]colorful.Color, []int) {
	rng := rand.New(rand.NewPCG(e.seed, e.seed^0x9e3779b97f4a7c15)) // #nosec G404 -- not security sensitive

	centroids := seedCentroids(rng, points, k)
	assignments := make([]int, len(points))
	for i := range assignments {
		assignments[i] = -1
	}

	for range e.maxIterations {
		changed := 0
		for i, p := range points {
			nearest := nearestCentroid(p, centroids)
			if assignments[i] != nearest {
				assignments[i] = nearest
				changed++
			}
		}
		if changed == 0 {
			break
		}

		next := recalculate(rng, points, assignments, k)
		movement := 0.0
		for i := range centroids {
			movement += centroids[i].DistanceLab(next[i])
		}
		centroids = next
		if movement/float64(k)*100 < e.convergence {
			break
		}
	}

	sizes := make([]int, k)
	for _, p := range points {
		sizes[nearestCentroid(p, centroids)]++
	}
	return centroids, sizes
}

// seedCentroids picks initial centroids with probability proportional to
// squared distance from the nearest existing one.
func seedCentroids(rng *rand.Rand, points []colorful.Color, k int) []colorful.Color {
	centroids := make([]colorful.Color, 0, k)
	centroids = append(centroids, points[rng.IntN(len(points))])

	dist := make([]float64, len(points))
	for len(centroids) < k {
		total := 0.0
		for i, p := range points {
			d := math.MaxFloat64
			for _, c := range centroids {
				d = math.Min(d, p.DistanceLab(c))
			}
			dist[i] = d * d
			total += dist[i]
		}
		if total == 0 {
			centroids = append(centroids, centroids[len(centroids)-1])
			continue
		}

		target := rng.Float64() * total
		cumulative := 0.0
		chosen := len(points) - 1
		for i, d := range dist {
			cumulative += d
			if cumulative >= target {
				chosen = i
				break
			}
		}
		centroids = append(centroids, points[chosen])
	}
	return centroids
}

func nearestCentroid(p colorful.Color, centroids []colorful.Color) int {
	best, nearest := math.MaxFloat64, 0
	for i, c := range centroids {
		if d := p.DistanceLab(c); d < best {
			best, nearest = d, i
		}
	}
	return nearest
}

// recalculate averages each cluster in L*a*b*. Empty clusters are reseeded.
func recalculate(rng *rand.Rand, points []colorful.Color, assignments []int, k int) []colorful.Color {
	sums := make([][3]float64, k)
	counts := make([]int, k)
	for i, p := range points {
		l, a, b := p.Lab()
		c := assignments[i]
		sums[c][0] += l
		sums[c][1] += a
		sums[c][2] += b
		counts[c]++
	}

	out := make([]colorful.Color, k)
	for i := range k {
		if counts[i] == 0 {
			out[i] = points[rng.IntN(len(points))]
			continue
		}
		n := float64(counts[i])
		out[i] = colorful.Lab(sums[i][0]/n, sums[i][1]/n, sums[i][2]/n)
	}
	return out
}
