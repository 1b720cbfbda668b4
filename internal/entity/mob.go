package entity

import (
	"math"
	"math/rand"

	"github.com/annel0/voxelcraft/internal/physics"
	"github.com/annel0/voxelcraft/internal/vec"
)

// FleeDuration — сколько секунд мирный моб убегает после удара
const FleeDuration = 3.0

// Locator разрешает слабые ссылки на сущности по ID
type Locator interface {
	// Locate возвращает позицию живой сущности
	Locate(id uint64) (vec.Vec3Float, bool)
	// Damage наносит урон сущности
	Damage(id uint64, amount float64, from vec.Vec3Float)
}

// Surroundings — всё, что моб видит за тик
type Surroundings struct {
	Terrain physics.Terrain
	Locator Locator
	Rand    *rand.Rand
}

// Mob — моб с физическим телом и конечным автоматом
type Mob struct {
	ID     uint64
	Stats  *MobStats
	Body   *physics.Body
	Health float64
	Yaw    float64

	// Target — слабая ссылка (ID) на цель; 0 — нет цели
	Target uint64

	State     State
	Direction vec.Vec3Float
	Cooldown  float64 // до следующей атаки, секунды
}

// NewMob создаёт моба; ID назначает реестр
func NewMob(stats *MobStats, pos vec.Vec3Float) *Mob {
	return &Mob{
		Stats:  stats,
		Body:   physics.NewBody(pos, stats.Speed, stats.Collider),
		Health: stats.MaxHealth,
	}
}

// Type возвращает тип моба
func (m *Mob) Type() MobType { return m.Stats.Type }

// Position возвращает позицию ног
func (m *Mob) Position() vec.Vec3Float { return m.Body.Position }

// Dead сообщает, пора ли убрать моба
func (m *Mob) Dead() bool { return m.Health <= 0 }

// StateName возвращает имя текущего состояния
func (m *Mob) StateName() StateName {
	if m.State == nil {
		return ""
	}
	return m.State.Name()
}

// Tick обновляет ИИ и продвигает тело
func (m *Mob) Tick(s *Surroundings, dt float64) {
	if m.Dead() {
		return
	}
	if m.Cooldown > 0 {
		m.Cooldown = math.Max(0, m.Cooldown-dt)
	}
	if m.State == nil {
		m.SetState(NewWanderState(), s)
	}

	next := m.State.Update(m, s, dt)
	if next != m.State {
		m.SetState(next, s)
	}

	intent := m.Direction
	m.Body.Step(s.Terrain, intent, dt)
	if h := intent.Horizontal(); h.Length() > 0 {
		m.Yaw = math.Atan2(-h.X, -h.Z)
	}
}

// SetState переключает состояние с вызовом Exit/Enter
func (m *Mob) SetState(state State, s *Surroundings) {
	if m.State != nil {
		m.State.Exit(m)
	}
	m.State = state
	if m.State != nil {
		m.State.Enter(m, s)
	}
}

// Hurt наносит урон. Мирный моб после удара убегает от источника.
// Возвращает true, если моб погиб.
func (m *Mob) Hurt(amount float64, from vec.Vec3Float, s *Surroundings) bool {
	if m.Dead() || amount <= 0 {
		return m.Dead()
	}
	m.Health -= amount
	if m.Dead() {
		return true
	}
	if !m.Stats.Hostile {
		m.SetState(NewFleeState(from), s)
	}
	return false
}

// distanceTo — расстояние до цели в плоскости XZ
func (m *Mob) distanceTo(p vec.Vec3Float) float64 {
	return m.Body.Position.Horizontal().DistanceTo(p.Horizontal())
}
