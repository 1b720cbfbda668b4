package world

import (
	"context"
	"testing"
	"time"

	"github.com/annel0/voxelcraft/internal/render"
	"github.com/annel0/voxelcraft/internal/vec"
	"github.com/annel0/voxelcraft/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoaderFixture(t *testing.T) (*World, *render.Recorder, *ChunkLoader) {
	t.Helper()
	w := New(32, 16, 32)
	NewTerrainGenerator(GeneratorConfig{Seed: 3, SeaLevel: 5}).Generate(context.Background(), w)
	rec := render.NewRecorder(true)
	cl := NewChunkLoader(w, rec.Sink(), ChunkLoaderConfig{
		ChunkSize:     8,
		SurfaceSplitY: 8,
		Stagger:       10 * time.Millisecond,
		InitialWave:   4,
	})
	return w, rec, cl
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestChunkLoader_PriorityOrder(t *testing.T) {
	_, _, cl := newLoaderFixture(t)
	cl.Enqueue(vec.Vec2{X: 1, Z: 1})

	require.Equal(t, 32, cl.Pending(), "16 чанков × 2 полосы")
	assert.Equal(t, vec.Vec2{X: 1, Z: 1}, cl.queue[0].Chunk, "ближайший к центру чанк идёт первым")
	for i, task := range cl.queue {
		assert.Equal(t, i, task.Priority)
		assert.Equal(t, time.Duration(i)*10*time.Millisecond, task.Due)
		if i < 16 {
			assert.Equal(t, BandSurface, task.Band)
		} else {
			assert.Equal(t, BandUnderground, task.Band)
		}
	}
}

func TestChunkLoader_StaggeredExecution(t *testing.T) {
	_, rec, cl := newLoaderFixture(t)
	cl.Enqueue(vec.Vec2{})

	assert.Equal(t, 1, cl.Advance(0), "задача с нулевым приоритетом выполняется сразу")
	assert.False(t, isClosed(cl.Ready()))

	assert.Equal(t, 3, cl.Advance(30*time.Millisecond))
	assert.True(t, isClosed(cl.Ready()), "первая волна из четырёх surface-задач завершена")
	assert.Equal(t, 1, rec.Count(render.EventLoadingComplete))
	assert.Equal(t, 28, cl.Pending(), "остальные чанки догружаются в фоне")

	cl.Flush()
	assert.Equal(t, 0, cl.Pending())
	assert.Equal(t, 1, rec.Count(render.EventLoadingComplete), "сигнал загрузки срабатывает один раз")
}

func TestChunkLoader_MaterializesExactlyNonAir(t *testing.T) {
	w, rec, cl := newLoaderFixture(t)
	cl.Enqueue(vec.Vec2{})
	cl.Flush()

	nonAir := 0
	for id, n := range w.CountBlocks() {
		if id != block.AirBlockID {
			nonAir += n
		}
	}
	assert.Equal(t, nonAir, rec.VisibleCount())

	got, ok := rec.Visible(vec.Vec3{X: 10, Y: 0, Z: 20})
	assert.True(t, ok)
	assert.Equal(t, block.BedrockBlockID, got)
}

func TestChunkLoader_InvalidateDropsPending(t *testing.T) {
	_, rec, cl := newLoaderFixture(t)
	cl.Enqueue(vec.Vec2{})
	cl.Advance(0)
	before := rec.VisibleCount()
	oldGen := cl.Generation()

	queued := len(cl.queue)
	require.Equal(t, 31, queued)

	cl.Invalidate()
	assert.NotEqual(t, oldGen, cl.Generation())
	assert.Equal(t, 0, cl.Pending(), "задачи старого поколения не считаются ожидающими")
	assert.Len(t, cl.queue, queued, "очередь чистится лениво")

	assert.Equal(t, 0, cl.Advance(0), "устаревшие задачи снимаются без ожидания срока")
	assert.Equal(t, queued, cl.stale)
	assert.Empty(t, cl.queue)
	assert.Equal(t, before, rec.VisibleCount(), "после инвалидации рендер не трогается")
	assert.Equal(t, 1, cl.Executed())
}

func TestChunkLoader_StaleTaskAfterReenqueue(t *testing.T) {
	_, rec, cl := newLoaderFixture(t)
	cl.Enqueue(vec.Vec2{})
	oldGen := cl.Generation()
	cl.Invalidate()
	cl.Enqueue(vec.Vec2{})

	cl.queue = append([]ChunkTask{{Chunk: vec.Vec2{X: 3, Z: 3}, Generation: oldGen}}, cl.queue...)
	assert.Equal(t, 32, cl.Pending())

	assert.Equal(t, 1, cl.Advance(0), "задача старого поколения не мешает первой актуальной")
	assert.Equal(t, 1, cl.stale)
	_, ok := rec.Visible(vec.Vec3{X: 24, Y: 0, Z: 24})
	assert.False(t, ok, "чанк старого поколения не материализован")
}

func TestChunkLoader_Observer(t *testing.T) {
	_, _, cl := newLoaderFixture(t)
	var tasks, blocks int
	cl.SetObserver(func(task ChunkTask, n int, _ time.Duration) {
		tasks++
		blocks += n
	})

	cl.Enqueue(vec.Vec2{})
	cl.Flush()
	assert.Equal(t, 32, tasks)
	assert.Greater(t, blocks, 0)
	assert.Equal(t, 32, cl.Executed())
}

func TestChunkLoader_EmptyWorld(t *testing.T) {
	cl := NewChunkLoader(New(0, 0, 0), nil, DefaultChunkLoaderConfig())
	cl.Enqueue(vec.Vec2{})
	assert.True(t, isClosed(cl.Ready()), "без задач загрузка завершена сразу")
}
