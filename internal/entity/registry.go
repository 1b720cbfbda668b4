package entity

import (
	"sort"

	"github.com/annel0/voxelcraft/internal/vec"
)

// PlayerID — фиксированный ID единственного игрока
const PlayerID uint64 = 1

// Registry хранит игрока и мобов и разрешает ссылки между ними по ID.
// Мобы ссылаются на цели только через ID, поэтому удалённая сущность
// просто перестаёт находиться.
type Registry struct {
	player *Player
	mobs   map[uint64]*Mob
	index  *SpatialIndex
	nextID uint64

	// onDamage вызывается после урона игроку или мобу
	onDamage func(id uint64, amount float64)
	surr     *Surroundings
}

// NewRegistry создаёт пустой реестр
func NewRegistry() *Registry {
	return &Registry{
		mobs:   make(map[uint64]*Mob),
		index:  NewSpatialIndex(DefaultCellSize),
		nextID: PlayerID + 1,
	}
}

// SetPlayer регистрирует игрока
func (r *Registry) SetPlayer(p *Player) {
	p.ID = PlayerID
	r.player = p
}

// Player возвращает игрока
func (r *Registry) Player() *Player { return r.player }

// SetSurroundings задаёт окружение, с которым мобы реагируют на урон
func (r *Registry) SetSurroundings(s *Surroundings) { r.surr = s }

// OnDamage устанавливает обработчик урона
func (r *Registry) OnDamage(fn func(id uint64, amount float64)) { r.onDamage = fn }

// AddMob регистрирует моба и возвращает его ID
func (r *Registry) AddMob(m *Mob) uint64 {
	m.ID = r.nextID
	r.nextID++
	r.mobs[m.ID] = m
	r.index.Insert(m)
	return m.ID
}

// RemoveMob удаляет моба
func (r *Registry) RemoveMob(id uint64) bool {
	if _, ok := r.mobs[id]; !ok {
		return false
	}
	delete(r.mobs, id)
	r.index.Remove(id)
	return true
}

// Mob возвращает моба по ID
func (r *Registry) Mob(id uint64) (*Mob, bool) {
	m, ok := r.mobs[id]
	return m, ok
}

// Mobs возвращает мобов в порядке ID
func (r *Registry) Mobs() []*Mob {
	out := make([]*Mob, 0, len(r.mobs))
	for _, m := range r.mobs {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MobCount возвращает число живых мобов
func (r *Registry) MobCount() int { return len(r.mobs) }

// CountByType возвращает число мобов по типам
func (r *Registry) CountByType() map[MobType]int {
	counts := make(map[MobType]int)
	for _, m := range r.mobs {
		counts[m.Type()]++
	}
	return counts
}

// Locate возвращает позицию игрока или живого моба
func (r *Registry) Locate(id uint64) (vec.Vec3Float, bool) {
	if id == PlayerID && r.player != nil {
		return r.player.Position(), true
	}
	if m, ok := r.mobs[id]; ok && !m.Dead() {
		return m.Position(), true
	}
	return vec.Vec3Float{}, false
}

// Damage наносит урон игроку или мобу
func (r *Registry) Damage(id uint64, amount float64, from vec.Vec3Float) {
	switch {
	case id == PlayerID && r.player != nil:
		r.player.Damage(amount)
	default:
		m, ok := r.mobs[id]
		if !ok {
			return
		}
		m.Hurt(amount, from, r.surr)
	}
	if r.onDamage != nil {
		r.onDamage(id, amount)
	}
}

// Reindex обновляет пространственный индекс после движения мобов
func (r *Registry) Reindex() {
	for _, m := range r.mobs {
		r.index.Update(m)
	}
}

// Index возвращает пространственный индекс мобов
func (r *Registry) Index() *SpatialIndex { return r.index }

// MobsInRange возвращает мобов в горизонтальном радиусе от точки, по возрастанию ID
func (r *Registry) MobsInRange(center vec.Vec3Float, radius float64) []*Mob {
	return r.index.QueryRange(center, radius)
}
