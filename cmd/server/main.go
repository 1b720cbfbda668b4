package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/voxelcraft/internal/api"
	"github.com/annel0/voxelcraft/internal/config"
	"github.com/annel0/voxelcraft/internal/game"
	"github.com/annel0/voxelcraft/internal/logging"
	"github.com/annel0/voxelcraft/internal/metrics"
	"github.com/annel0/voxelcraft/internal/observability"
	"github.com/annel0/voxelcraft/internal/render"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (по умолчанию GAME_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	logOpts := logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}
	if err := logging.InitDefaultLogger("server", logOpts); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	logging.Info("🎮 Запуск симуляции воксельного мира...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.InitTelemetry(ctx, observability.Settings{
		Enabled:     cfg.Telemetry.Enabled,
		ServiceName: cfg.Telemetry.ServiceName,
		Endpoint:    cfg.Telemetry.Endpoint,
		SampleRatio: cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		logging.Error("❌ Ошибка инициализации OpenTelemetry: %v", err)
		os.Exit(1)
	}

	sim := metrics.NewSimulation()
	session, err := game.NewSession(ctx, cfg, sim)
	if err != nil {
		logging.Error("❌ Ошибка создания сессии: %v", err)
		os.Exit(1)
	}
	watchRenderEvents(session.Bus())

	exporter := metrics.NewExporter(sim, session.Bus(), time.Second)
	exporter.StartHTTP(fmt.Sprintf(":%d", cfg.Server.GetMetricsPort()))

	restPort := fmt.Sprintf(":%d", cfg.Server.GetRESTPort())
	restLogger, err := logging.GetLoggerManager().GetLogger("rest_api", logOpts)
	if err != nil {
		logging.Warn("Логгер REST API недоступен: %v", err)
		restLogger = nil
	}
	rest := api.NewRestServer(api.Config{
		Port:       restPort,
		Session:    session,
		Registerer: sim.Registry,
		Logger:     restLogger,
	})
	go func() {
		if err := rest.Start(); err != nil {
			logging.Error("❌ Ошибка REST API: %v", err)
			stop()
		}
	}()

	runDone := make(chan error, 1)
	go func() { runDone <- session.Run(ctx, nil) }()

	logging.Info("✅ Все сервисы запущены")
	logging.Info("   🌐 REST API: http://localhost%s", restPort)
	logging.Info("   ❤️  Health check: http://localhost%s/health", restPort)
	logging.Info("   📈 Метрики: http://localhost:%d/metrics", cfg.Server.GetMetricsPort())

	<-ctx.Done()
	logging.Info("📡 Получен сигнал завершения, останавливаемся...")

	session.Close()
	if err := <-runDone; err != nil && err != context.Canceled {
		logging.Error("Симуляция завершилась с ошибкой: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rest.Stop(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка остановки REST API: %v", err)
	}
	if err := exporter.Stop(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка остановки экспортера метрик: %v", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка остановки OpenTelemetry: %v", err)
	}

	logging.Info("👋 Сервер остановлен")
}

// watchRenderEvents пишет в лог редкие события рендера: headless-сервер
// не рисует сцену, но показывает, когда мир готов и какой UI открыт.
func watchRenderEvents(bus *render.Bus) {
	bus.Subscribe(render.Filter{Types: []render.EventType{render.EventLoadingComplete, render.EventOpenUI}}, func(ev render.Event) {
		switch ev.Type {
		case render.EventLoadingComplete:
			logging.Info("🗺️ Первая волна чанков материализована")
		case render.EventOpenUI:
			logging.Info("🪟 Открыт интерфейс %s в %v", ev.UI, ev.Position)
		}
	})
}
