package terrain

import (
	"math"

	"github.com/voxelstack/blocks/internal/noise"
)

// Options parameterises one layered-noise octave stack. Smoothness scales
// the sample position down (larger smoothness, broader features);
// roughness is the per-octave amplitude falloff. Frequency doubles with
// each octave regardless of roughness.
type Options struct {
	Octaves    int
	Amplitude  float64
	Smoothness float64
	Roughness  float64
	Offset     float64
}

// noiseA and noiseB are the two octave stacks the terrain generator
// layers together: A carries the broad landmass shape, B perturbs it with
// shorter-wavelength detail.
var (
	noiseA = Options{Octaves: 6, Amplitude: 105, Smoothness: 205, Roughness: 0.58, Offset: 18}
	noiseB = Options{Octaves: 4, Amplitude: 20, Smoothness: 200, Roughness: 0.45, Offset: 0}
)

// sampleLayered sums Octaves layers of 2D simplex noise at increasing
// frequency and decreasing amplitude, normalised to [0, 1] by the
// accumulated amplitude.
func sampleLayered(gen *noise.Simplex, x, z float64, opt Options) float64 {
	total := 0.0
	accumulated := 0.0
	amplitude := 1.0

	for i := 0; i < opt.Octaves; i++ {
		freq := math.Pow(2, float64(i))
		sampleX := x / opt.Smoothness * freq
		sampleZ := z / opt.Smoothness * freq

		n := gen.Noise2D(sampleX, sampleZ)
		total += ((n + 1) / 2) * amplitude

		accumulated += amplitude
		amplitude *= opt.Roughness
	}

	if accumulated == 0 {
		return 0
	}
	return total / accumulated
}

// bump is a smooth falloff that is 1 at t=0 and reaches 0 at |t|=1.
func bump(t float64) float64 {
	v := 1 - math.Pow(t, 6)
	if v < 0 {
		return 0
	}
	return v
}

// islandFalloff shrinks terrain height toward the edges of the loaded
// world so the playable area reads as an island rather than tiling
// infinitely.
func islandFalloff(normX, normZ float64) float64 {
	return bump(normX) * bump(normZ) * 0.9
}
