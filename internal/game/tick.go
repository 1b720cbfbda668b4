package game

import (
	"math"
	"time"

	"github.com/annel0/voxelcraft/internal/entity"
	"github.com/annel0/voxelcraft/internal/logging"
	"github.com/annel0/voxelcraft/internal/physics"
	"github.com/annel0/voxelcraft/internal/render"
	"github.com/annel0/voxelcraft/internal/vec"
	"github.com/annel0/voxelcraft/internal/world"
	"github.com/annel0/voxelcraft/internal/world/block"
	"github.com/annel0/voxelcraft/internal/world/item"
)

// fistDamage — урон голой рукой и предметами без собственного урона
const fistDamage = 1.0

// Tick продвигает симуляцию на dt: команды UI, ввод игрока, физика,
// ИИ мобов, отложенные задачи чанков и позы для рендера.
func (s *Session) Tick(dt time.Duration, in Input) {
	start := time.Now()
	secs := dt.Seconds()

	s.drainCommands()
	s.registry.Reindex()

	p := s.registry.Player()
	for _, a := range in.Grid {
		s.crafter.AddToGrid(a.Cell, a.Slot)
	}
	p.Look(in.LookDX, in.LookDY)
	if in.Hotbar != nil {
		s.inv.Select(*in.Hotbar)
	}
	if in.Jump {
		p.Body.Jump()
	}
	if in.Primary {
		s.primary(in.Target)
	}
	if in.Secondary {
		s.secondary(in.Target)
	}

	p.Body.Step(s.world, p.Intent(in.Move), secs)
	for _, m := range s.registry.Mobs() {
		m.Tick(s.surr, secs)
	}
	s.registry.Reindex()
	s.reapMobs()

	if p.Health <= 0 {
		p.Respawn()
		s.metrics.PlayerDied()
		logging.Info("💀 Игрок погиб (%d), возрождение в %v", p.Deaths, p.Spawn)
	}

	s.loader.Advance(dt)
	s.emitPoses()

	s.ticks++
	s.metrics.SetPendingChunks(s.loader.Pending())
	s.metrics.ObserveTick(time.Since(start))
}

// primary бьёт ближайшего моба на луче взгляда, иначе ломает блок
func (s *Session) primary(target *vec.Vec3) {
	tool := s.inv.SelectedStack().Item
	if target != nil {
		s.mutator.TryBreak(*target, tool, s.inv)
		return
	}

	p := s.registry.Player()
	eye, dir := p.Eye(), p.LookDirection()
	hit, hitBlock := world.Raycast(s.world, eye, dir, world.DefaultReach)

	reach := world.DefaultReach
	if hitBlock {
		reach = hit.Distance
	}
	if m := s.mobOnRay(eye, dir, reach); m != nil {
		s.registry.Damage(m.ID, toolDamage(tool), p.Position())
		return
	}
	if hitBlock {
		s.mutator.TryBreak(hit.Block, tool, s.inv)
	}
}

// secondary ставит блок из выбранного слота в пустую клетку перед гранью.
// Интерактивный блок под прицелом вместо этого открывает свой интерфейс.
func (s *Session) secondary(target *vec.Vec3) {
	var pos vec.Vec3
	if target != nil {
		if s.openUI(*target) {
			return
		}
		pos = *target
	} else {
		p := s.registry.Player()
		hit, ok := world.Raycast(s.world, p.Eye(), p.LookDirection(), world.DefaultReach)
		if !ok {
			return
		}
		if s.openUI(hit.Block) {
			return
		}
		pos = hit.Adjacent
	}
	if s.occupied(pos) {
		return
	}
	s.mutator.TryPlace(pos, s.inv, s.inv.Selected())
}

// openUI открывает интерфейс, если в pos интерактивный блок
func (s *Session) openUI(pos vec.Vec3) bool {
	def, ok := block.Get(s.world.GetAt(pos))
	if !ok || !def.Interactive {
		return false
	}
	s.bus.OpenUI(def.UI, pos)
	logging.Debug("🪟 Открыт интерфейс %s в %v", def.UI, pos)
	return true
}

// occupied сообщает, пересекает ли воксель игрока или моба
func (s *Session) occupied(pos vec.Vec3) bool {
	p := s.registry.Player()
	if p.Body.Collider.OverlapsVoxel(p.Position(), pos) {
		return true
	}
	x, z := float64(pos.X), float64(pos.Z)
	for _, m := range s.registry.Index().QueryRect(x, z, x+1, z+1) {
		if m.Body.Collider.OverlapsVoxel(m.Position(), pos) {
			return true
		}
	}
	return false
}

func (s *Session) mobOnRay(origin, dir vec.Vec3Float, reach float64) *entity.Mob {
	var best *entity.Mob
	bestDist := math.Inf(1)
	for _, m := range s.registry.MobsInRange(origin, reach+1) {
		d, ok := physics.RayIntersects(origin, dir, reach, m.Position(), m.Body.Collider)
		if ok && d < bestDist {
			best, bestDist = m, d
		}
	}
	return best
}

func toolDamage(tool item.ID) float64 {
	if def, ok := item.Get(tool); ok && def.Damage > 0 {
		return def.Damage
	}
	return fistDamage
}

// reapMobs убирает погибших мобов и отдаёт их дроп игроку
func (s *Session) reapMobs() {
	removed := false
	for _, m := range s.registry.Mobs() {
		if !m.Dead() {
			continue
		}
		drops := s.mutator.ApplyDrops(m.Stats.Drops, s.inv)
		s.bus.RemoveEntity(m.ID)
		s.registry.RemoveMob(m.ID)
		s.metrics.MobKilled(string(m.Type()))
		logging.Debug("☠️ Моб %s#%d убит, дроп %v", m.Type(), m.ID, drops)
		removed = true
	}
	if removed {
		s.updateMobGauges()
	}
}

func (s *Session) updateMobGauges() {
	counts := s.registry.CountByType()
	for _, t := range entity.DefaultMobs().Types() {
		s.metrics.SetMobsAlive(string(t), counts[t])
	}
}

func (s *Session) emitPoses() {
	p := s.registry.Player()
	s.bus.UpdatePose(render.Pose{
		EntityID: p.ID,
		Kind:     render.KindPlayer,
		Position: p.Position(),
		Yaw:      p.Yaw,
		Pitch:    p.Pitch,
	})
	for _, m := range s.registry.Mobs() {
		s.bus.UpdatePose(render.Pose{
			EntityID: m.ID,
			Kind:     render.KindMob,
			Variant:  string(m.Type()),
			Position: m.Position(),
			Yaw:      m.Yaw,
		})
	}
}
