package vec

import "math"

// Vec2 представляет координаты колонки или чанка на плоскости (x, z)
type Vec2 struct {
	X, Z int
}

// ToChunkCoords преобразует координаты колонки в координаты чанка заданного размера
func (v Vec2) ToChunkCoords(size int) Vec2 {
	return Vec2{X: floorDiv(v.X, size), Z: floorDiv(v.Z, size)}
}

// LocalInChunk возвращает локальные координаты колонки внутри чанка
func (v Vec2) LocalInChunk(size int) Vec2 {
	return Vec2{X: v.X - floorDiv(v.X, size)*size, Z: v.Z - floorDiv(v.Z, size)*size}
}

// DistanceTo вычисляет расстояние до другой точки
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := float64(v.X - other.X)
	dz := float64(v.Z - other.Z)
	return math.Sqrt(dx*dx + dz*dz)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
