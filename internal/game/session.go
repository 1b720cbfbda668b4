package game

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/annel0/voxelcraft/internal/config"
	"github.com/annel0/voxelcraft/internal/entity"
	"github.com/annel0/voxelcraft/internal/inventory"
	"github.com/annel0/voxelcraft/internal/logging"
	"github.com/annel0/voxelcraft/internal/metrics"
	"github.com/annel0/voxelcraft/internal/render"
	"github.com/annel0/voxelcraft/internal/vec"
	"github.com/annel0/voxelcraft/internal/world"
)

// commandQueueSize — сколько команд UI может ждать следующего тика
const commandQueueSize = 256

// Session владеет миром, сущностями и инвентарём одной игры.
// Всё состояние меняется только из тика; остальные горутины
// обращаются к нему через Exec.
type Session struct {
	cfg *config.Config

	world    *world.World
	genStats world.GenerationStats
	loader   *world.ChunkLoader
	mutator  *world.Mutator

	inv     *inventory.Inventory
	crafter *inventory.Crafter

	registry *entity.Registry
	spawner  *entity.Spawner
	surr     *entity.Surroundings

	bus     *render.Bus
	metrics *metrics.Simulation

	commands     chan command
	closed       chan struct{}
	closeOnce    sync.Once
	shutdownOnce sync.Once
	running      atomic.Bool

	ticks uint64
}

type command struct {
	fn   func(*Session)
	done chan struct{}
}

// NewSession генерирует мир, ставит игрока в центр карты, спаунит мобов
// и ставит в очередь материализацию чанков вокруг игрока.
// sim может быть nil — тогда метрики пишутся в собственный реестр.
func NewSession(ctx context.Context, cfg *config.Config, sim *metrics.Simulation) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}
	populations, err := mobPopulations(cfg.Simulation.Mobs)
	if err != nil {
		return nil, err
	}
	if sim == nil {
		sim = metrics.NewSimulation()
	}

	wc := cfg.World
	w := world.New(wc.Width, wc.Height, wc.Depth)
	gen := world.NewTerrainGenerator(world.GeneratorConfig{
		Seed:     wc.Seed,
		SeaLevel: wc.SeaLevel,
		Noise:    wc.Noise,
	})
	stats := gen.Generate(ctx, w)

	s := &Session{
		cfg:      cfg,
		world:    w,
		genStats: stats,
		bus:      render.NewBus(),
		metrics:  sim,
		inv:      inventory.New(),
		registry: entity.NewRegistry(),
		commands: make(chan command, commandQueueSize),
		closed:   make(chan struct{}),
	}
	s.crafter = inventory.NewCrafter(s.inv, nil)

	s.mutator = world.NewMutator(w, s.bus, rand.New(rand.NewSource(wc.Seed+1)))
	s.mutator.SetObserver(sim)

	s.loader = world.NewChunkLoader(w, s.bus, world.ChunkLoaderConfig{
		ChunkSize:     cfg.Chunks.Size,
		SurfaceSplitY: cfg.Chunks.SurfaceSplitY,
		Stagger:       cfg.Chunks.Stagger(),
		InitialWave:   cfg.Chunks.InitialWave,
	})
	s.loader.SetObserver(sim.ObserveChunkTask)

	s.surr = &entity.Surroundings{
		Terrain: w,
		Locator: s.registry,
		Rand:    rand.New(rand.NewSource(wc.Seed + 2)),
	}
	s.registry.SetSurroundings(s.surr)
	s.registry.OnDamage(func(id uint64, amount float64) {
		logging.Debug("💥 Сущность %d получила урон %.1f", id, amount)
	})

	spawnX, spawnZ := wc.Width/2, wc.Depth/2
	spawn := vec.Vec3Float{
		X: float64(spawnX) + 0.5,
		Y: float64(w.HighestSolid(spawnX, spawnZ) + 1),
		Z: float64(spawnZ) + 0.5,
	}
	s.registry.SetPlayer(entity.NewPlayer(spawn))

	s.spawner = entity.NewSpawner(entity.DefaultMobs(), rand.New(rand.NewSource(wc.Seed+3)))
	s.spawner.Populate(s.registry, w, populations)
	s.updateMobGauges()

	s.loader.Enqueue(s.loader.ChunkOf(spawnX, spawnZ))
	logging.Info("🎮 Сессия создана: мир %dx%dx%d, мобов %d, чанков в очереди %d",
		wc.Width, wc.Height, wc.Depth, s.registry.MobCount(), s.loader.Pending())
	return s, nil
}

func mobPopulations(cfg map[string]int) (map[entity.MobType]int, error) {
	catalog := entity.DefaultMobs()
	out := make(map[entity.MobType]int, len(cfg))
	for name, n := range cfg {
		t := entity.MobType(name)
		if _, ok := catalog.Get(t); !ok {
			return nil, fmt.Errorf("simulation.mobs: %q: %w", name, entity.ErrBadMob)
		}
		out[t] = n
	}
	return out, nil
}

// World возвращает мир. Читать его можно только из тика или Exec.
func (s *Session) World() *world.World { return s.world }

// GenerationStats возвращает статистику генерации мира
func (s *Session) GenerationStats() world.GenerationStats { return s.genStats }

// Bus возвращает шину событий рендера; подписчики получают события из тика
func (s *Session) Bus() *render.Bus { return s.bus }

// Metrics возвращает метрики симуляции
func (s *Session) Metrics() *metrics.Simulation { return s.metrics }

// Loader возвращает загрузчик чанков
func (s *Session) Loader() *world.ChunkLoader { return s.loader }

// Registry возвращает реестр сущностей
func (s *Session) Registry() *entity.Registry { return s.registry }

// Player возвращает игрока
func (s *Session) Player() *entity.Player { return s.registry.Player() }

// Inventory возвращает инвентарь игрока
func (s *Session) Inventory() *inventory.Inventory { return s.inv }

// Crafter возвращает движок крафта
func (s *Session) Crafter() *inventory.Crafter { return s.crafter }

// Ticks возвращает число выполненных тиков
func (s *Session) Ticks() uint64 { return s.ticks }

// Ready закрывается, когда первая волна чанков материализована
func (s *Session) Ready() <-chan struct{} { return s.loader.Ready() }

// Close завершает сессию: отложенные задачи чанков становятся устаревшими,
// ожидающие Exec получают ErrClosed. Если крутится Run, сброс выполняет он.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		if !s.running.Load() {
			s.shutdown()
		}
	})
}

func (s *Session) shutdown() {
	s.shutdownOnce.Do(func() {
		s.loader.Invalidate()
		logging.Info("🛑 Сессия закрыта после %d тиков", s.ticks)
	})
}

// Run крутит тики с частотой из конфигурации до отмены ctx или Close.
// После возврата сессия закрыта.
func (s *Session) Run(ctx context.Context, src InputSource) error {
	if src == nil {
		src = idleSource{}
	}
	s.running.Store(true)
	defer func() {
		s.running.Store(false)
		s.shutdown()
	}()

	ticker := time.NewTicker(s.cfg.Simulation.TickInterval())
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.closed:
			return nil
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			s.Tick(dt, src.Poll())
		}
	}
}
