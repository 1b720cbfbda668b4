package physics

import (
	"math"

	"github.com/annel0/voxelcraft/internal/vec"
)

// BoxCollider — хитбокс сущности: квадрат в плане и высота от ног
type BoxCollider struct {
	HalfWidth float64
	Height    float64
}

// NewBoxCollider создаёт коллайдер с указанными размерами
func NewBoxCollider(width, height float64) BoxCollider {
	return BoxCollider{HalfWidth: width / 2, Height: height}
}

// Bounds возвращает min/max углы хитбокса для позиции ног
func (bc BoxCollider) Bounds(feet vec.Vec3Float) (vec.Vec3Float, vec.Vec3Float) {
	return vec.Vec3Float{X: feet.X - bc.HalfWidth, Y: feet.Y, Z: feet.Z - bc.HalfWidth},
		vec.Vec3Float{X: feet.X + bc.HalfWidth, Y: feet.Y + bc.Height, Z: feet.Z + bc.HalfWidth}
}

// OverlapsVoxel проверяет, пересекает ли хитбокс единичный воксель
func (bc BoxCollider) OverlapsVoxel(feet vec.Vec3Float, voxel vec.Vec3) bool {
	lo, hi := bc.Bounds(feet)
	return hi.X > float64(voxel.X) && lo.X < float64(voxel.X+1) &&
		hi.Y > float64(voxel.Y) && lo.Y < float64(voxel.Y+1) &&
		hi.Z > float64(voxel.Z) && lo.Z < float64(voxel.Z+1)
}

// CheckBoxCollision проверяет пересечение двух хитбоксов
func CheckBoxCollision(pos1 vec.Vec3Float, c1 BoxCollider, pos2 vec.Vec3Float, c2 BoxCollider) bool {
	lo1, hi1 := c1.Bounds(pos1)
	lo2, hi2 := c2.Bounds(pos2)
	return hi1.X > lo2.X && lo1.X < hi2.X &&
		hi1.Y > lo2.Y && lo1.Y < hi2.Y &&
		hi1.Z > lo2.Z && lo1.Z < hi2.Z
}

// RayIntersects пересекает луч с хитбоксом методом слэбов.
// Возвращает расстояние до входа в хитбокс, если оно не больше reach.
func RayIntersects(origin, dir vec.Vec3Float, reach float64, feet vec.Vec3Float, bc BoxCollider) (float64, bool) {
	lo, hi := bc.Bounds(feet)
	o := [3]float64{origin.X, origin.Y, origin.Z}
	d := [3]float64{dir.X, dir.Y, dir.Z}
	l := [3]float64{lo.X, lo.Y, lo.Z}
	h := [3]float64{hi.X, hi.Y, hi.Z}

	tMin, tMax := 0.0, reach
	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < l[i] || o[i] > h[i] {
				return 0, false
			}
			continue
		}
		t1 := (l[i] - o[i]) / d[i]
		t2 := (h[i] - o[i]) / d[i]
		tMin = math.Max(tMin, math.Min(t1, t2))
		tMax = math.Min(tMax, math.Max(t1, t2))
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}
