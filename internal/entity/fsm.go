package entity

import (
	"math"

	"github.com/annel0/voxelcraft/internal/vec"
)

// StateName — имя состояния ИИ
type StateName string

const (
	StateWander StateName = "wander"
	StateChase  StateName = "chase"
	StateAttack StateName = "attack"
	StateFlee   StateName = "flee"
)

// ChaseHysteresis — во сколько раз дальше зоны обнаружения моб бросает погоню
const ChaseHysteresis = 1.5

// State представляет состояние конечного автомата моба
type State interface {
	Name() StateName
	Enter(m *Mob, s *Surroundings)
	Update(m *Mob, s *Surroundings, dt float64) State
	Exit(m *Mob)
}

// targetDistance разрешает цель моба; ok=false, если цели нет или она исчезла
func targetDistance(m *Mob, s *Surroundings) (vec.Vec3Float, float64, bool) {
	if m.Target == 0 || s.Locator == nil {
		return vec.Vec3Float{}, 0, false
	}
	pos, ok := s.Locator.Locate(m.Target)
	if !ok {
		return vec.Vec3Float{}, 0, false
	}
	return pos, m.distanceTo(pos), true
}

// === Конкретные состояния ===

// WanderState — блуждание со сменой направления каждые 1–4 секунды
type WanderState struct {
	Timer float64
}

// NewWanderState создаёт состояние блуждания
func NewWanderState() *WanderState {
	return &WanderState{}
}

func (st *WanderState) Name() StateName { return StateWander }

func (st *WanderState) Enter(m *Mob, s *Surroundings) {
	st.redecide(m, s)
}

func (st *WanderState) redecide(m *Mob, s *Surroundings) {
	st.Timer = 1 + s.Rand.Float64()*3
	// Треть времени моб просто стоит
	if s.Rand.Float64() < 0.33 {
		m.Direction = vec.Vec3Float{}
		return
	}
	angle := s.Rand.Float64() * 2 * math.Pi
	m.Direction = vec.Vec3Float{X: math.Cos(angle), Z: math.Sin(angle)}
}

func (st *WanderState) Update(m *Mob, s *Surroundings, dt float64) State {
	if m.Stats.Hostile {
		if _, dist, ok := targetDistance(m, s); ok && dist < m.Stats.DetectionRange {
			return NewChaseState()
		}
	}

	st.Timer -= dt
	if st.Timer <= 0 {
		st.redecide(m, s)
	}
	return st
}

func (st *WanderState) Exit(m *Mob) {}

// ChaseState — преследование цели, направление пересчитывается каждый тик
type ChaseState struct{}

// NewChaseState создаёт состояние погони
func NewChaseState() *ChaseState { return &ChaseState{} }

func (st *ChaseState) Name() StateName { return StateChase }

func (st *ChaseState) Enter(m *Mob, s *Surroundings) {
	if pos, _, ok := targetDistance(m, s); ok {
		m.Direction = pos.Sub(m.Body.Position).Horizontal().Normalized()
	}
}

func (st *ChaseState) Update(m *Mob, s *Surroundings, dt float64) State {
	pos, dist, ok := targetDistance(m, s)
	if !ok || dist > m.Stats.DetectionRange*ChaseHysteresis {
		return NewWanderState()
	}
	if dist < m.Stats.AttackRange {
		return NewAttackState()
	}
	m.Direction = pos.Sub(m.Body.Position).Horizontal().Normalized()
	return st
}

func (st *ChaseState) Exit(m *Mob) {}

// AttackState — моб стоит у цели и бьёт её раз в AttackCooldown
type AttackState struct{}

// NewAttackState создаёт состояние атаки
func NewAttackState() *AttackState { return &AttackState{} }

func (st *AttackState) Name() StateName { return StateAttack }

func (st *AttackState) Enter(m *Mob, s *Surroundings) {
	m.Direction = vec.Vec3Float{}
}

func (st *AttackState) Update(m *Mob, s *Surroundings, dt float64) State {
	pos, dist, ok := targetDistance(m, s)
	if !ok {
		return NewWanderState()
	}
	if dist >= m.Stats.AttackRange {
		return NewChaseState()
	}

	if facing := pos.Sub(m.Body.Position).Horizontal(); facing.Length() > 0 {
		m.Yaw = math.Atan2(-facing.X, -facing.Z)
	}
	if m.Cooldown <= 0 {
		s.Locator.Damage(m.Target, m.Stats.AttackDamage, m.Body.Position)
		m.Cooldown = m.Stats.AttackCooldown
	}
	return st
}

func (st *AttackState) Exit(m *Mob) {}

// FleeState — мирный моб убегает от точки удара
type FleeState struct {
	From  vec.Vec3Float
	Timer float64
}

// NewFleeState создаёт состояние бегства
func NewFleeState(from vec.Vec3Float) *FleeState {
	return &FleeState{From: from, Timer: FleeDuration}
}

func (st *FleeState) Name() StateName { return StateFlee }

func (st *FleeState) Enter(m *Mob, s *Surroundings) {
	away := m.Body.Position.Sub(st.From).Horizontal().Normalized()
	if away.Length() == 0 {
		angle := 0.0
		if s != nil && s.Rand != nil {
			angle = s.Rand.Float64() * 2 * math.Pi
		}
		away = vec.Vec3Float{X: math.Cos(angle), Z: math.Sin(angle)}
	}
	m.Direction = away
}

func (st *FleeState) Update(m *Mob, s *Surroundings, dt float64) State {
	st.Timer -= dt
	if st.Timer <= 0 {
		return NewWanderState()
	}
	return st
}

func (st *FleeState) Exit(m *Mob) {
	m.Direction = vec.Vec3Float{}
}
