package world

import (
	"context"
	"sort"
	"time"

	"github.com/annel0/voxelcraft/internal/logging"
	"github.com/annel0/voxelcraft/internal/render"
	"github.com/annel0/voxelcraft/internal/vec"
	"github.com/annel0/voxelcraft/internal/world/block"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Band — вертикальная полоса чанка
type Band uint8

const (
	BandSurface Band = iota
	BandUnderground
)

func (b Band) String() string {
	if b == BandSurface {
		return "surface"
	}
	return "underground"
}

// ChunkLoaderConfig — параметры постепенной загрузки
type ChunkLoaderConfig struct {
	ChunkSize     int           // Размер чанка в колонках
	SurfaceSplitY int           // Полоса surface начинается с этого Y
	Stagger       time.Duration // Задержка на единицу приоритета
	InitialWave   int           // Сколько surface-задач образуют первую волну
}

// DefaultChunkLoaderConfig возвращает стандартные параметры
func DefaultChunkLoaderConfig() ChunkLoaderConfig {
	return ChunkLoaderConfig{
		ChunkSize:     8,
		SurfaceSplitY: 8,
		Stagger:       10 * time.Millisecond,
		InitialWave:   4,
	}
}

// ChunkTask — материализация одной полосы одного чанка
type ChunkTask struct {
	Chunk      vec.Vec2
	Band       Band
	Priority   int
	Due        time.Duration
	Generation uuid.UUID
}

// TaskObserver получает итог каждой выполненной задачи
type TaskObserver func(task ChunkTask, blocks int, took time.Duration)

// ChunkLoader разбивает мир на чанки и кооперативно материализует их для рендера.
// Задачи выполняются только внутри Advance, то есть между тиками симуляции.
type ChunkLoader struct {
	world *World
	sink  render.Sink
	cfg   ChunkLoaderConfig

	queue      []ChunkTask
	elapsed    time.Duration
	generation uuid.UUID

	ready         chan struct{}
	readyFired    bool
	firstWaveLeft int
	firstWaveSize int

	executed int
	stale    int
	observer TaskObserver
}

// NewChunkLoader создаёт загрузчик для мира
func NewChunkLoader(w *World, sink render.Sink, cfg ChunkLoaderConfig) *ChunkLoader {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 8
	}
	if cfg.InitialWave <= 0 {
		cfg.InitialWave = 1
	}
	if sink == nil {
		sink = render.Nop{}
	}
	return &ChunkLoader{
		world:      w,
		sink:       sink,
		cfg:        cfg,
		generation: uuid.New(),
		ready:      make(chan struct{}),
	}
}

// SetObserver устанавливает наблюдателя задач (метрики)
func (cl *ChunkLoader) SetObserver(obs TaskObserver) {
	cl.observer = obs
}

// Generation возвращает текущий токен поколения
func (cl *ChunkLoader) Generation() uuid.UUID { return cl.generation }

// Ready закрывается, когда выполнена первая волна surface-задач
func (cl *ChunkLoader) Ready() <-chan struct{} { return cl.ready }

// Pending возвращает число ожидающих задач текущего поколения
func (cl *ChunkLoader) Pending() int {
	n := 0
	for _, task := range cl.queue {
		if task.Generation == cl.generation {
			n++
		}
	}
	return n
}

// Executed возвращает число выполненных задач
func (cl *ChunkLoader) Executed() int { return cl.executed }

// ChunkCount возвращает число чанков по X и Z
func (cl *ChunkLoader) ChunkCount() (int, int) {
	size := cl.cfg.ChunkSize
	return (cl.world.Width() + size - 1) / size, (cl.world.Depth() + size - 1) / size
}

// ChunkOf возвращает чанк, содержащий колонку (x, z)
func (cl *ChunkLoader) ChunkOf(x, z int) vec.Vec2 {
	return vec.Vec2{X: x, Z: z}.ToChunkCoords(cl.cfg.ChunkSize)
}

// Enqueue ставит в очередь все чанки мира: сначала surface по удалённости от center,
// затем underground в том же порядке. Приоритет задачи равен её индексу.
func (cl *ChunkLoader) Enqueue(center vec.Vec2) {
	cx, cz := cl.ChunkCount()
	chunks := make([]vec.Vec2, 0, cx*cz)
	for z := 0; z < cz; z++ {
		for x := 0; x < cx; x++ {
			chunks = append(chunks, vec.Vec2{X: x, Z: z})
		}
	}
	sort.SliceStable(chunks, func(i, j int) bool {
		return chunks[i].DistanceTo(center) < chunks[j].DistanceTo(center)
	})

	if cl.readyFired {
		cl.ready = make(chan struct{})
		cl.readyFired = false
	}

	cl.queue = cl.queue[:0]
	surfaceTasks := 0
	for _, band := range []Band{BandSurface, BandUnderground} {
		if !cl.bandExists(band) {
			continue
		}
		for _, c := range chunks {
			priority := len(cl.queue)
			cl.queue = append(cl.queue, ChunkTask{
				Chunk:      c,
				Band:       band,
				Priority:   priority,
				Due:        cl.elapsed + time.Duration(priority)*cl.cfg.Stagger,
				Generation: cl.generation,
			})
			if band == BandSurface {
				surfaceTasks++
			}
		}
	}

	cl.firstWaveSize = min(cl.cfg.InitialWave, surfaceTasks)
	cl.firstWaveLeft = cl.firstWaveSize
	logging.Debug("🧱 В очереди %d задач материализации (первая волна %d)", len(cl.queue), cl.firstWaveSize)

	if cl.firstWaveLeft == 0 {
		cl.fireReady()
	}
}

func (cl *ChunkLoader) bandExists(band Band) bool {
	lo, hi := cl.bandRange(band)
	return lo < hi
}

// bandRange возвращает полуинтервал Y полосы
func (cl *ChunkLoader) bandRange(band Band) (int, int) {
	split := min(max(cl.cfg.SurfaceSplitY, 0), cl.world.Height())
	if band == BandSurface {
		return split, cl.world.Height()
	}
	return 0, split
}

// Advance продвигает время загрузчика и выполняет задачи, срок которых наступил.
// Задачи старого поколения снимаются с очереди сразу, не дожидаясь срока.
func (cl *ChunkLoader) Advance(dt time.Duration) int {
	cl.elapsed += dt
	staleBefore := cl.stale
	ran := 0
	for len(cl.queue) > 0 {
		task := cl.queue[0]
		if task.Generation == cl.generation && task.Due > cl.elapsed {
			break
		}
		cl.queue = cl.queue[1:]
		if cl.execute(task) {
			ran++
		}
	}
	cl.logStale(staleBefore)
	return ran
}

// Flush выполняет все оставшиеся задачи немедленно
func (cl *ChunkLoader) Flush() int {
	staleBefore := cl.stale
	ran := 0
	for len(cl.queue) > 0 {
		task := cl.queue[0]
		cl.queue = cl.queue[1:]
		if cl.execute(task) {
			ran++
		}
	}
	cl.logStale(staleBefore)
	return ran
}

// Invalidate выдаёт новое поколение. Уже поставленные задачи остаются в очереди,
// но execute их отбрасывает, так что освобождённый рендер они не трогают.
func (cl *ChunkLoader) Invalidate() {
	cl.generation = uuid.New()
	logging.Debug("🧱 Новое поколение задач %s, устаревших в очереди: %d", cl.generation, len(cl.queue))
}

func (cl *ChunkLoader) logStale(before int) {
	if n := cl.stale - before; n > 0 {
		logging.Debug("🧱 Отброшено %d задач старого поколения", n)
	}
}

func (cl *ChunkLoader) execute(task ChunkTask) bool {
	if task.Generation != cl.generation {
		cl.stale++
		return false
	}

	start := time.Now()
	blocks := cl.materialize(task)
	cl.executed++

	if task.Band == BandSurface && task.Priority < cl.firstWaveSize && cl.firstWaveLeft > 0 {
		cl.firstWaveLeft--
		if cl.firstWaveLeft == 0 {
			cl.fireReady()
		}
	}
	if cl.observer != nil {
		cl.observer(task, blocks, time.Since(start))
	}
	return true
}

// materialize сообщает рендеру о каждом непустом вокселе полосы чанка
func (cl *ChunkLoader) materialize(task ChunkTask) int {
	_, span := otel.Tracer("voxelcraft/world").Start(context.Background(), "chunk.materialize")
	defer span.End()

	size := cl.cfg.ChunkSize
	x0, z0 := task.Chunk.X*size, task.Chunk.Z*size
	x1, z1 := min(x0+size, cl.world.Width()), min(z0+size, cl.world.Depth())
	y0, y1 := cl.bandRange(task.Band)

	count := 0
	for y := y0; y < y1; y++ {
		for z := z0; z < z1; z++ {
			for x := x0; x < x1; x++ {
				id := cl.world.Get(x, y, z)
				if id == block.AirBlockID {
					continue
				}
				cl.sink.Materialize(vec.Vec3{X: x, Y: y, Z: z}, id)
				count++
			}
		}
	}

	span.SetAttributes(
		attribute.Int("chunk.x", task.Chunk.X),
		attribute.Int("chunk.z", task.Chunk.Z),
		attribute.String("chunk.band", task.Band.String()),
		attribute.Int("chunk.blocks", count),
	)
	return count
}

func (cl *ChunkLoader) fireReady() {
	if cl.readyFired {
		return
	}
	cl.readyFired = true
	close(cl.ready)
	cl.sink.LoadingComplete()
	logging.Info("✅ Первая волна чанков загружена")
}
