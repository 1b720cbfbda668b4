package world

import (
	"math"

	"github.com/annel0/voxelcraft/internal/vec"
	"github.com/annel0/voxelcraft/internal/world/block"
)

// DefaultReach — дальность взаимодействия игрока с блоками
const DefaultReach = 5.0

// RayHit — первый воксель, в который упёрся луч
type RayHit struct {
	Block    vec.Vec3 // задетый блок (цель для ломания)
	Adjacent vec.Vec3 // пустая клетка перед ним (цель для установки)
	ID       block.ID
	Distance float64
}

// targetable — воздух и вода прозрачны для луча
func targetable(id block.ID) bool {
	return id != block.AirBlockID && id != block.WaterBlockID
}

// Raycast проходит воксели вдоль луча методом DDA и возвращает первый задетый блок
// в пределах reach. Луч, вышедший за мир, ничего не задевает.
func Raycast(w *World, origin, dir vec.Vec3Float, reach float64) (RayHit, bool) {
	dir = dir.Normalized()
	if dir == (vec.Vec3Float{}) || reach <= 0 {
		return RayHit{}, false
	}

	cell := origin.Floor()
	prev := cell

	step := [3]int{}
	tMax := [3]float64{}
	tDelta := [3]float64{}
	o := [3]float64{origin.X, origin.Y, origin.Z}
	d := [3]float64{dir.X, dir.Y, dir.Z}
	c := [3]int{cell.X, cell.Y, cell.Z}

	for i := 0; i < 3; i++ {
		switch {
		case d[i] > 0:
			step[i] = 1
			tMax[i] = (float64(c[i]+1) - o[i]) / d[i]
			tDelta[i] = 1 / d[i]
		case d[i] < 0:
			step[i] = -1
			tMax[i] = (o[i] - float64(c[i])) / -d[i]
			tDelta[i] = -1 / d[i]
		default:
			tMax[i] = math.Inf(1)
			tDelta[i] = math.Inf(1)
		}
	}

	t := 0.0
	for t <= reach {
		id := w.Get(c[0], c[1], c[2])
		if id == block.OutsideBlockID && t > 0 {
			return RayHit{}, false
		}
		if id != block.OutsideBlockID && targetable(id) {
			return RayHit{
				Block:    vec.Vec3{X: c[0], Y: c[1], Z: c[2]},
				Adjacent: prev,
				ID:       id,
				Distance: t,
			}, true
		}

		prev = vec.Vec3{X: c[0], Y: c[1], Z: c[2]}
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		t = tMax[axis]
		c[axis] += step[axis]
		tMax[axis] += tDelta[axis]
	}
	return RayHit{}, false
}
