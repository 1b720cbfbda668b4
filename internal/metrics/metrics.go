package metrics

import (
	"time"

	"github.com/annel0/voxelcraft/internal/world"
	"github.com/annel0/voxelcraft/internal/world/block"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "voxelcraft"

// Simulation — метрики симуляции в собственном реестре Prometheus
type Simulation struct {
	Registry *prometheus.Registry

	tickDuration  prometheus.Histogram
	ticks         prometheus.Counter
	chunkTasks    *prometheus.CounterVec
	chunkBlocks   prometheus.Counter
	chunkDuration prometheus.Histogram
	blockEdits    *prometheus.CounterVec
	mobsAlive     *prometheus.GaugeVec
	mobKills      *prometheus.CounterVec
	crafts        *prometheus.CounterVec
	playerDeaths  prometheus.Counter
	pendingChunks prometheus.Gauge

	renderPublished prometheus.Counter
	renderDelivered prometheus.Counter
	renderSubs      prometheus.Gauge

	processCPU prometheus.Gauge
	processRSS prometheus.Gauge
}

// NewSimulation создаёт и регистрирует все метрики
func NewSimulation() *Simulation {
	s := &Simulation{
		Registry: prometheus.NewRegistry(),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Длительность одного тика симуляции.",
			Buckets:   []float64{0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.032, 0.064},
		}),
		ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Общее число тиков симуляции.",
		}),
		chunkTasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunk_tasks_total",
			Help:      "Выполненные задачи материализации по полосам.",
		}, []string{"band"}),
		chunkBlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chunk_blocks_materialized_total",
			Help:      "Блоки, переданные рендеру загрузчиком чанков.",
		}),
		chunkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chunk_task_duration_seconds",
			Help:      "Длительность задачи материализации.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 10),
		}),
		blockEdits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "block_edits_total",
			Help:      "Изменения мира игроком.",
		}, []string{"op", "block"}),
		mobsAlive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mobs_alive",
			Help:      "Живые мобы по типам.",
		}, []string{"type"}),
		mobKills: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mob_kills_total",
			Help:      "Убитые игроком мобы.",
		}, []string{"type"}),
		crafts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "crafts_total",
			Help:      "Успешные крафты по рецептам.",
		}, []string{"recipe"}),
		playerDeaths: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "player_deaths_total",
			Help:      "Смерти игрока.",
		}),
		pendingChunks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chunk_tasks_pending",
			Help:      "Задачи материализации в очереди.",
		}),
		renderPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_events_published_total",
			Help:      "События, опубликованные в шину рендера.",
		}),
		renderDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_events_delivered_total",
			Help:      "События, доставленные подписчикам шины рендера.",
		}),
		renderSubs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "render_subscribers",
			Help:      "Подписчики шины рендера.",
		}),
		processCPU: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_cpu_percent",
			Help:      "Загрузка CPU процессом (gopsutil).",
		}),
		processRSS: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "process_rss_bytes",
			Help:      "Резидентная память процесса (gopsutil).",
		}),
	}

	s.Registry.MustRegister(
		s.tickDuration, s.ticks, s.chunkTasks, s.chunkBlocks, s.chunkDuration,
		s.blockEdits, s.mobsAlive, s.mobKills, s.crafts, s.playerDeaths, s.pendingChunks,
		s.renderPublished, s.renderDelivered, s.renderSubs,
		s.processCPU, s.processRSS,
		collectors.NewGoCollector(),
	)
	return s
}

// ObserveTick записывает длительность тика
func (s *Simulation) ObserveTick(d time.Duration) {
	s.ticks.Inc()
	s.tickDuration.Observe(d.Seconds())
}

// ObserveChunkTask — наблюдатель для world.ChunkLoader
func (s *Simulation) ObserveChunkTask(task world.ChunkTask, blocks int, took time.Duration) {
	s.chunkTasks.WithLabelValues(task.Band.String()).Inc()
	s.chunkBlocks.Add(float64(blocks))
	s.chunkDuration.Observe(took.Seconds())
}

// SetPendingChunks обновляет размер очереди загрузчика
func (s *Simulation) SetPendingChunks(n int) { s.pendingChunks.Set(float64(n)) }

// BlockBroken реализует world.MutationObserver
func (s *Simulation) BlockBroken(id block.ID) {
	s.blockEdits.WithLabelValues("break", id.String()).Inc()
}

// BlockPlaced реализует world.MutationObserver
func (s *Simulation) BlockPlaced(id block.ID) {
	s.blockEdits.WithLabelValues("place", id.String()).Inc()
}

// SetMobsAlive обновляет число живых мобов типа
func (s *Simulation) SetMobsAlive(mobType string, n int) {
	s.mobsAlive.WithLabelValues(mobType).Set(float64(n))
}

// MobKilled учитывает убийство моба
func (s *Simulation) MobKilled(mobType string) { s.mobKills.WithLabelValues(mobType).Inc() }

// Crafted учитывает успешный крафт
func (s *Simulation) Crafted(recipe string) { s.crafts.WithLabelValues(recipe).Inc() }

// PlayerDied учитывает смерть игрока
func (s *Simulation) PlayerDied() { s.playerDeaths.Inc() }

var _ world.MutationObserver = (*Simulation)(nil)
