package entity

import (
	"math/rand"

	"github.com/annel0/voxelcraft/internal/logging"
	"github.com/annel0/voxelcraft/internal/physics"
	"github.com/annel0/voxelcraft/internal/vec"
)

// spawnAttempts — сколько колонок пробуется, прежде чем отказаться от спауна
const spawnAttempts = 8

// Spawner создаёт начальную популяцию мобов на случайных колонках
type Spawner struct {
	catalog *MobCatalog
	rng     *rand.Rand
}

// NewSpawner создаёт спаунер с детерминированным генератором
func NewSpawner(catalog *MobCatalog, rng *rand.Rand) *Spawner {
	if catalog == nil {
		catalog = DefaultMobs()
	}
	return &Spawner{catalog: catalog, rng: rng}
}

// Populate спаунит указанное количество мобов каждого типа.
// Враждебные мобы получают игрока целью. Возвращает число созданных мобов.
func (sp *Spawner) Populate(reg *Registry, terrain physics.Terrain, populations map[MobType]int) int {
	spawned := 0
	for _, t := range sp.catalog.Types() {
		n := populations[t]
		stats, _ := sp.catalog.Get(t)
		for i := 0; i < n; i++ {
			if _, ok := sp.Spawn(reg, terrain, stats); ok {
				spawned++
			}
		}
	}
	logging.Info("🐷 Заспаунено мобов: %d", spawned)
	return spawned
}

// Spawn ставит одного моба на поверхность случайной колонки.
// Колонки, где моб пересёкся бы с игроком, пропускаются.
func (sp *Spawner) Spawn(reg *Registry, terrain physics.Terrain, stats *MobStats) (*Mob, bool) {
	if terrain.Width() <= 0 || terrain.Depth() <= 0 {
		return nil, false
	}
	for attempt := 0; attempt < spawnAttempts; attempt++ {
		x := sp.rng.Intn(terrain.Width())
		z := sp.rng.Intn(terrain.Depth())
		pos := vec.Vec3Float{
			X: float64(x) + 0.5,
			Y: float64(terrain.HighestSolid(x, z) + 1),
			Z: float64(z) + 0.5,
		}

		m := NewMob(stats, pos)
		if p := reg.Player(); p != nil && physics.CheckBoxCollision(pos, m.Body.Collider, p.Position(), p.Body.Collider) {
			continue
		}
		if stats.Hostile {
			m.Target = PlayerID
		}
		reg.AddMob(m)
		return m, true
	}
	return nil, false
}
