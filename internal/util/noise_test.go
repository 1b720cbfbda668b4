package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testOctaves = []Octave{{Amplitude: 1, Frequency: 0.04}, {Amplitude: 0.5, Frequency: 0.09}}

func TestSineNoise_Deterministic(t *testing.T) {
	a := NewSineNoise(42, testOctaves)
	b := NewSineNoise(42, testOctaves)
	for x := 0; x < 50; x += 7 {
		for z := 0; z < 50; z += 5 {
			assert.Equal(t, a.Noise2D(float64(x), float64(z)), b.Noise2D(float64(x), float64(z)))
		}
	}

	c := NewSineNoise(43, testOctaves)
	assert.NotEqual(t, a.Noise2D(10, 10), c.Noise2D(10, 10), "разные сиды должны давать разный рельеф")
}

func TestSineNoise_Range(t *testing.T) {
	n := NewSineNoise(7, testOctaves)
	for x := -100; x < 100; x += 3 {
		v := n.Noise2D(float64(x), float64(x*2))
		assert.GreaterOrEqual(t, v, -1.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	assert.Equal(t, 0.0, NewSineNoise(1, nil).Noise2D(1, 1))
}

func TestPerlinNoise_Range(t *testing.T) {
	p := NewPerlinNoise(5, 0.05)
	for x := 0; x < 64; x += 4 {
		v := p.Noise2D(float64(x), float64(x))
		assert.GreaterOrEqual(t, v, -1.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}
