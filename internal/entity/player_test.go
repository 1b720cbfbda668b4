package entity

import (
	"math"
	"testing"

	"github.com/annel0/voxelcraft/internal/vec"
	"github.com/stretchr/testify/assert"
)

func TestPlayer_IntentRotatedByYaw(t *testing.T) {
	p := NewPlayer(vec.Vec3Float{})

	f := p.Intent(MoveIntent{Forward: true})
	assert.InDelta(t, 0, f.X, 1e-9)
	assert.InDelta(t, -1, f.Z, 1e-9, "при yaw=0 вперёд — это -Z")

	r := p.Intent(MoveIntent{Right: true})
	assert.InDelta(t, 1, r.X, 1e-9)

	p.Look(math.Pi/2, 0)
	f = p.Intent(MoveIntent{Forward: true})
	assert.InDelta(t, -1, f.X, 1e-9)
	assert.InDelta(t, 0, f.Z, 1e-9)

	none := p.Intent(MoveIntent{Forward: true, Back: true})
	assert.Zero(t, none.Length(), "противоположные клавиши гасят друг друга")
}

func TestPlayer_PitchClamp(t *testing.T) {
	p := NewPlayer(vec.Vec3Float{})
	p.Look(0, 10)
	assert.Equal(t, PitchLimit, p.Pitch)
	p.Look(0, -20)
	assert.Equal(t, -PitchLimit, p.Pitch)

	d := p.LookDirection()
	assert.InDelta(t, 1, d.Length(), 1e-9)
	assert.Less(t, d.Y, 0.0)
}

func TestPlayer_DeathAndRespawn(t *testing.T) {
	spawn := vec.Vec3Float{X: 3, Y: 10, Z: 3}
	p := NewPlayer(spawn)
	p.Body.Position = vec.Vec3Float{X: 20, Y: 4, Z: 20}

	assert.False(t, p.Damage(15))
	assert.True(t, p.Damage(5))
	p.Respawn()

	assert.Equal(t, PlayerMaxHealth, p.Health)
	assert.Equal(t, spawn, p.Position())
	assert.Equal(t, 1, p.Deaths)
}
