package world

import (
	"github.com/aquilax/go-perlin"
)

// Perlin parameters shared by every field: smoothing, frequency step, octaves.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
)

// noiseField is one independently seeded 2D Perlin field sampled at a fixed
// frequency. The underlying tables are read-only after construction, so a
// field is safe to sample from several goroutines.
type noiseField struct {
	p    *perlin.Perlin
	freq float64
}

// Salts keep the fields decorrelated while sharing one world seed.
const (
	saltCompression int64 = 0x1F3D5B79
	saltRegional    int64 = 0x2C4E6A8B
	saltBase        int64 = 0x3A5C7E91
	saltTreeCoarse  int64 = 0x4B6D8FA3
	saltTreeFine    int64 = 0x5C7E90B5
)

func newNoiseField(seed, salt int64, freq float64) noiseField {
	return noiseField{
		p:    perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed^salt),
		freq: freq,
	}
}

// at samples the field at world column (x, z). The result is roughly in [-1, 1].
func (n noiseField) at(x, z int) float64 {
	return n.p.Noise2D(float64(x)*n.freq, float64(z)*n.freq)
}

// unit maps a sample into [0, 1].
func (n noiseField) unit(x, z int) float64 {
	return clampF((n.at(x, z)+1)/2, 0, 1)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
