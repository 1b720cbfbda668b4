package physics

import (
	"math"

	"github.com/annel0/voxelcraft/internal/vec"
)

// Физические константы
const (
	Gravity          = 25.0 // блоков/с²
	JumpVelocity     = 8.0  // блоков/с
	TerminalVelocity = 50.0
	BoundsMargin     = 0.5
)

// Terrain — то, что тело знает о мире: высоты колонок и размеры
type Terrain interface {
	HighestSolid(x, z int) int
	Width() int
	Depth() int
}

// Body — непрерывное тело игрока или моба
type Body struct {
	Position vec.Vec3Float // позиция ног
	Velocity vec.Vec3Float
	OnGround bool
	Speed    float64 // горизонтальная скорость, блоков/с
	Collider BoxCollider
}

// NewBody создаёт тело в позиции с указанной скоростью
func NewBody(pos vec.Vec3Float, speed float64, collider BoxCollider) *Body {
	return &Body{Position: pos, Speed: speed, Collider: collider}
}

// Jump задаёт вертикальную скорость прыжка, только если тело стоит на земле
func (b *Body) Jump() bool {
	if !b.OnGround {
		return false
	}
	b.Velocity.Y = JumpVelocity
	b.OnGround = false
	return true
}

// Step продвигает тело на dt секунд. intent — желаемое горизонтальное
// направление (нормализуется). Одинаков для игрока и мобов.
func (b *Body) Step(t Terrain, intent vec.Vec3Float, dt float64) {
	if dt <= 0 {
		return
	}

	move := intent.Horizontal().Normalized().Mul(b.Speed * dt)
	b.Position.X += move.X
	b.Position.Z += move.Z
	b.Velocity.X = move.X / dt
	b.Velocity.Z = move.Z / dt

	b.Velocity.Y = math.Max(b.Velocity.Y-Gravity*dt, -TerminalVelocity)
	b.Position.Y += b.Velocity.Y * dt

	// Границы до поиска земли: колонка под телом всегда внутри мира
	b.clampBounds(t)
	b.resolveGround(t)
}

// resolveGround ставит тело на самый высокий твёрдый блок колонки под ним
func (b *Body) resolveGround(t Terrain) {
	x := int(math.Floor(b.Position.X))
	z := int(math.Floor(b.Position.Z))
	ground := float64(t.HighestSolid(x, z) + 1)

	if b.Position.Y <= ground {
		b.Position.Y = ground
		b.Velocity.Y = 0
		b.OnGround = true
		return
	}
	b.OnGround = false
}

func (b *Body) clampBounds(t Terrain) {
	b.Position.X = clamp(b.Position.X, BoundsMargin, float64(t.Width())-BoundsMargin)
	b.Position.Z = clamp(b.Position.Z, BoundsMargin, float64(t.Depth())-BoundsMargin)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
