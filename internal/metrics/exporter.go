package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/annel0/voxelcraft/internal/logging"
	"github.com/annel0/voxelcraft/internal/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// StatsProvider — источник счётчиков шины рендера
type StatsProvider interface {
	Metrics() render.Stats
}

// Exporter обслуживает /metrics и раз в интервал переносит
// счётчики шины и процесса в Prometheus.
type Exporter struct {
	sim      *Simulation
	bus      StatsProvider
	interval time.Duration
	proc     *process.Process
	server   *http.Server

	quit chan struct{}
	done chan struct{}
	prev render.Stats
}

// NewExporter создаёт экспортер, но не запускает его
func NewExporter(sim *Simulation, bus StatsProvider, interval time.Duration) *Exporter {
	if interval <= 0 {
		interval = time.Second
	}
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logging.Warn("gopsutil: процесс недоступен: %v", err)
		proc = nil
	}
	return &Exporter{
		sim:      sim,
		bus:      bus,
		interval: interval,
		proc:     proc,
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Handler возвращает HTTP-обработчик реестра симуляции
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.sim.Registry, promhttp.HandlerOpts{Registry: e.sim.Registry})
}

// StartHTTP запускает /metrics на addr и цикл обновления. Не блокирует.
func (e *Exporter) StartHTTP(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.Handler())
	e.server = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		if err := e.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
	go e.loop()
}

// Stop останавливает цикл обновления и HTTP-сервер
func (e *Exporter) Stop(ctx context.Context) error {
	if e.server == nil {
		return nil
	}
	close(e.quit)
	<-e.done
	if err := e.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("metrics server shutdown: %w", err)
	}
	return nil
}

func (e *Exporter) loop() {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	defer close(e.done)

	for {
		select {
		case <-ticker.C:
			e.Collect()
		case <-e.quit:
			return
		}
	}
}

// Collect переносит приращения счётчиков шины и замеряет процесс
func (e *Exporter) Collect() {
	if e.bus != nil {
		stats := e.bus.Metrics()
		if d := stats.Published - e.prev.Published; stats.Published > e.prev.Published {
			e.sim.renderPublished.Add(float64(d))
		}
		if d := stats.Delivered - e.prev.Delivered; stats.Delivered > e.prev.Delivered {
			e.sim.renderDelivered.Add(float64(d))
		}
		e.sim.renderSubs.Set(float64(stats.Subscribers))
		e.prev = stats
	}

	if cpuPercent, err := e.cpuPercent(); err == nil {
		e.sim.processCPU.Set(cpuPercent)
	}
	if e.proc != nil {
		if mem, err := e.proc.MemoryInfo(); err == nil {
			e.sim.processRSS.Set(float64(mem.RSS))
		}
	}
}

// cpuPercent — загрузка CPU процессом, при ошибке — системная
func (e *Exporter) cpuPercent() (float64, error) {
	if e.proc != nil {
		if p, err := e.proc.CPUPercent(); err == nil {
			return p, nil
		}
	}
	percents, err := cpu.Percent(0, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, errors.New("cpu: no samples")
	}
	return percents[0], nil
}
