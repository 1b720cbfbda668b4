package physics

import (
	"testing"

	"github.com/annel0/voxelcraft/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatTerrain — мир с одинаковой высотой и одной колонкой-исключением
type flatTerrain struct {
	width, depth int
	height       int
	pillars      map[vec.Vec2]int
}

func (f flatTerrain) HighestSolid(x, z int) int {
	if h, ok := f.pillars[vec.Vec2{X: x, Z: z}]; ok {
		return h
	}
	return f.height
}
func (f flatTerrain) Width() int { return f.width }
func (f flatTerrain) Depth() int { return f.depth }

const dt = 1.0 / 60

func TestBody_GroundClamp(t *testing.T) {
	terrain := flatTerrain{width: 16, depth: 16, height: 6}
	b := NewBody(vec.Vec3Float{X: 4.5, Y: 14, Z: 4.5}, 5, NewBoxCollider(0.6, 1.8))

	ticks := 0
	for ; ticks < 600 && !b.OnGround; ticks++ {
		b.Step(terrain, vec.Vec3Float{}, dt)
	}

	require.True(t, b.OnGround, "тело должно приземлиться за ограниченное число тиков")
	assert.Less(t, ticks, 120)
	assert.Equal(t, 7.0, b.Position.Y, "ноги на высоте h+1")
	assert.Zero(t, b.Velocity.Y)

	b.Step(terrain, vec.Vec3Float{}, dt)
	assert.True(t, b.OnGround, "стоящее тело остаётся на земле")
	assert.Equal(t, 7.0, b.Position.Y)
}

func TestBody_Jump(t *testing.T) {
	terrain := flatTerrain{width: 16, depth: 16, height: 2}
	b := NewBody(vec.Vec3Float{X: 8, Y: 3, Z: 8}, 5, NewBoxCollider(0.6, 1.8))
	b.Step(terrain, vec.Vec3Float{}, dt)
	require.True(t, b.OnGround)

	assert.True(t, b.Jump())
	assert.False(t, b.Jump(), "в воздухе прыгать нельзя")

	peak := 0.0
	for i := 0; i < 120; i++ {
		b.Step(terrain, vec.Vec3Float{}, dt)
		peak = max(peak, b.Position.Y)
	}
	assert.Greater(t, peak, 4.0)
	assert.True(t, b.OnGround)
	assert.Equal(t, 3.0, b.Position.Y)
}

func TestBody_HorizontalMovementAndBounds(t *testing.T) {
	terrain := flatTerrain{width: 8, depth: 8, height: 0}
	b := NewBody(vec.Vec3Float{X: 4, Y: 1, Z: 4}, 5, NewBoxCollider(0.6, 1.8))

	b.Step(terrain, vec.Vec3Float{X: 10}, 0.1)
	assert.InDelta(t, 4.5, b.Position.X, 1e-9, "интент нормализуется и умножается на скорость")

	for i := 0; i < 100; i++ {
		b.Step(terrain, vec.Vec3Float{X: 1, Z: -1}, 0.1)
	}
	assert.Equal(t, 8-BoundsMargin, b.Position.X)
	assert.Equal(t, BoundsMargin, b.Position.Z)
}

func TestBody_StepsOntoPillar(t *testing.T) {
	terrain := flatTerrain{width: 8, depth: 8, height: 1, pillars: map[vec.Vec2]int{{X: 3, Z: 2}: 4}}
	b := NewBody(vec.Vec3Float{X: 2.9, Y: 2, Z: 2.5}, 5, NewBoxCollider(0.6, 1.8))

	b.Step(terrain, vec.Vec3Float{X: 1}, 0.05)
	assert.True(t, b.OnGround)
	assert.Equal(t, 5.0, b.Position.Y, "тело встаёт на верх колонки")
}

func TestCollision(t *testing.T) {
	c := NewBoxCollider(0.6, 1.8)
	feet := vec.Vec3Float{X: 2.5, Y: 3, Z: 2.5}

	assert.True(t, c.OverlapsVoxel(feet, vec.Vec3{X: 2, Y: 3, Z: 2}))
	assert.True(t, c.OverlapsVoxel(feet, vec.Vec3{X: 2, Y: 4, Z: 2}), "голова")
	assert.False(t, c.OverlapsVoxel(feet, vec.Vec3{X: 2, Y: 5, Z: 2}))
	assert.False(t, c.OverlapsVoxel(feet, vec.Vec3{X: 3, Y: 3, Z: 2}))
	assert.False(t, c.OverlapsVoxel(feet, vec.Vec3{X: 2, Y: 2, Z: 2}), "блок под ногами не пересекается")

	assert.True(t, CheckBoxCollision(feet, c, vec.Vec3Float{X: 2.9, Y: 3.5, Z: 2.5}, c))
	assert.False(t, CheckBoxCollision(feet, c, vec.Vec3Float{X: 4, Y: 3, Z: 2.5}, c))
}

func TestRayIntersects(t *testing.T) {
	c := NewBoxCollider(1, 1)
	target := vec.Vec3Float{X: 5, Y: 0, Z: 0.5}

	d, ok := RayIntersects(vec.Vec3Float{X: 0, Y: 0.5, Z: 0.5}, vec.Vec3Float{X: 1}, 5, target, c)
	require.True(t, ok)
	assert.InDelta(t, 4.5, d, 1e-9)

	_, ok = RayIntersects(vec.Vec3Float{X: 0, Y: 0.5, Z: 0.5}, vec.Vec3Float{X: 1}, 3, target, c)
	assert.False(t, ok, "за пределами досягаемости")

	_, ok = RayIntersects(vec.Vec3Float{X: 0, Y: 3, Z: 0.5}, vec.Vec3Float{X: 1}, 10, target, c)
	assert.False(t, ok, "луч проходит выше")
}
