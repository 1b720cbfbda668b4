package entity

import (
	"math"

	"github.com/annel0/voxelcraft/internal/physics"
	"github.com/annel0/voxelcraft/internal/vec"
)

// Константы игрока
const (
	PlayerSpeed     = 5.0
	PlayerMaxHealth = 20.0
	PlayerEyeHeight = 1.62
	PitchLimit      = math.Pi/2 - 0.01
)

// PlayerCollider — хитбокс игрока
var PlayerCollider = physics.NewBoxCollider(0.6, 1.8)

// MoveIntent — состояние клавиш движения
type MoveIntent struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
}

// Player — единственный игрок сессии
type Player struct {
	ID        uint64
	Body      *physics.Body
	Yaw       float64 // theta
	Pitch     float64 // phi
	Health    float64
	MaxHealth float64
	Spawn     vec.Vec3Float
	Deaths    int
}

// NewPlayer создаёт игрока в точке появления
func NewPlayer(spawn vec.Vec3Float) *Player {
	return &Player{
		Body:      physics.NewBody(spawn, PlayerSpeed, PlayerCollider),
		Health:    PlayerMaxHealth,
		MaxHealth: PlayerMaxHealth,
		Spawn:     spawn,
	}
}

// Position возвращает позицию ног
func (p *Player) Position() vec.Vec3Float { return p.Body.Position }

// Eye возвращает позицию глаз
func (p *Player) Eye() vec.Vec3Float {
	return p.Body.Position.Add(vec.Vec3Float{Y: PlayerEyeHeight})
}

// Look поворачивает взгляд; наклон ограничен почти вертикалью
func (p *Player) Look(dYaw, dPitch float64) {
	p.Yaw = math.Mod(p.Yaw+dYaw, 2*math.Pi)
	p.Pitch = math.Max(-PitchLimit, math.Min(PitchLimit, p.Pitch+dPitch))
}

// Forward возвращает горизонтальное направление взгляда
func (p *Player) Forward() vec.Vec3Float {
	return vec.Vec3Float{X: -math.Sin(p.Yaw), Z: -math.Cos(p.Yaw)}
}

// LookDirection возвращает полное направление взгляда с учётом наклона
func (p *Player) LookDirection() vec.Vec3Float {
	cp := math.Cos(p.Pitch)
	return vec.Vec3Float{
		X: -math.Sin(p.Yaw) * cp,
		Y: math.Sin(p.Pitch),
		Z: -math.Cos(p.Yaw) * cp,
	}
}

// Intent переводит клавиши в горизонтальный вектор, повёрнутый по yaw
func (p *Player) Intent(m MoveIntent) vec.Vec3Float {
	var f, r float64
	if m.Forward {
		f++
	}
	if m.Back {
		f--
	}
	if m.Right {
		r++
	}
	if m.Left {
		r--
	}
	forward := p.Forward()
	right := vec.Vec3Float{X: math.Cos(p.Yaw), Z: -math.Sin(p.Yaw)}
	return forward.Mul(f).Add(right.Mul(r))
}

// Damage наносит урон и сообщает, погиб ли игрок
func (p *Player) Damage(amount float64) bool {
	if amount <= 0 {
		return false
	}
	p.Health -= amount
	return p.Health <= 0
}

// Respawn возвращает игрока в точку появления с полным здоровьем
func (p *Player) Respawn() {
	p.Health = p.MaxHealth
	p.Body.Position = p.Spawn
	p.Body.Velocity = vec.Vec3Float{}
	p.Body.OnGround = false
	p.Deaths++
}
