package util

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// Noise2D — источник детерминированного двумерного шума в диапазоне [-1, 1]
type Noise2D interface {
	Noise2D(x, z float64) float64
}

// Octave задаёт амплитуду и частоту одной октавы
type Octave struct {
	Amplitude float64
	Frequency float64
}

// SineNoise — сумма синусоид по октавам, нормированная на суммарную амплитуду.
// Дешёвая замена градиентному шуму; фазы зависят только от сида.
type SineNoise struct {
	octaves []Octave
	phases  [][2]float64
	total   float64
}

// NewSineNoise создаёт синусоидальный шум с фазами, выведенными из сида
func NewSineNoise(seed int64, octaves []Octave) *SineNoise {
	rng := rand.New(rand.NewSource(seed))
	n := &SineNoise{
		octaves: octaves,
		phases:  make([][2]float64, len(octaves)),
	}
	for i, o := range octaves {
		n.phases[i] = [2]float64{rng.Float64() * 2 * math.Pi, rng.Float64() * 2 * math.Pi}
		n.total += math.Abs(o.Amplitude)
	}
	return n
}

// Noise2D возвращает значение шума для колонки
func (n *SineNoise) Noise2D(x, z float64) float64 {
	if n.total == 0 {
		return 0
	}
	sum := 0.0
	for i, o := range n.octaves {
		sum += o.Amplitude * math.Sin(x*o.Frequency+n.phases[i][0]) * math.Cos(z*o.Frequency+n.phases[i][1])
	}
	return sum / n.total
}

// PerlinNoise оборачивает go-perlin для той же сигнатуры
type PerlinNoise struct {
	perlin *perlin.Perlin
	scale  float64
}

// NewPerlinNoise создаёт шум Перлина с указанным сидом и масштабом координат
func NewPerlinNoise(seed int64, scale float64) *PerlinNoise {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	return &PerlinNoise{
		perlin: perlin.NewPerlin(alpha, beta, n, seed),
		scale:  scale,
	}
}

// Noise2D возвращает значение шума Перлина, обрезанное до [-1, 1]
func (p *PerlinNoise) Noise2D(x, z float64) float64 {
	v := p.perlin.Noise2D(x*p.scale, z*p.scale)
	return math.Max(-1, math.Min(1, v))
}
