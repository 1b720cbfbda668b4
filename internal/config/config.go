package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config — корневая структура конфигурации сервера симуляции
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Chunks     ChunksConfig     `yaml:"chunks"`
	Simulation SimulationConfig `yaml:"simulation"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
}

type WorldConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Depth    int    `yaml:"depth"`
	Seed     int64  `yaml:"seed"`
	SeaLevel int    `yaml:"sea_level"`
	Noise    string `yaml:"noise"` // sine | perlin
}

type ChunksConfig struct {
	Size          int `yaml:"size"`
	SurfaceSplitY int `yaml:"surface_split_y"`
	StaggerMs     int `yaml:"stagger_ms"`
	InitialWave   int `yaml:"initial_wave"`
}

// Stagger возвращает задержку на единицу приоритета
func (c ChunksConfig) Stagger() time.Duration {
	return time.Duration(c.StaggerMs) * time.Millisecond
}

type SimulationConfig struct {
	TickRateHz int            `yaml:"tick_rate_hz"`
	Mobs       map[string]int `yaml:"mobs"` // начальная популяция по типам
}

// TickInterval возвращает длительность одного тика
func (s SimulationConfig) TickInterval() time.Duration {
	if s.TickRateHz <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(s.TickRateHz)
}

type ServerConfig struct {
	RESTPort    int `yaml:"rest_port"`
	MetricsPort int `yaml:"metrics_port"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console | json
}

type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Endpoint    string  `yaml:"endpoint"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// GetRESTPort возвращает REST API порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "GAME_REST_PORT", 8088)
}

// GetMetricsPort возвращает Prometheus метрики порт с поддержкой fallback значений
func (s *ServerConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(s.MetricsPort, "GAME_METRICS_PORT", 2112)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}
	return defaultPort
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Width:    64,
			Height:   32,
			Depth:    64,
			Seed:     1337,
			SeaLevel: 8,
			Noise:    "sine",
		},
		Chunks: ChunksConfig{
			Size:          8,
			SurfaceSplitY: 8,
			StaggerMs:     10,
			InitialWave:   4,
		},
		Simulation: SimulationConfig{
			TickRateHz: 60,
			Mobs: map[string]int{
				"zombie": 4,
				"pig":    3,
				"cow":    3,
				"sheep":  3,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "voxelcraft",
		},
	}
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", берётся GAME_CONFIG; если и он пуст — возвращаются дефолты.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("GAME_CONFIG")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	// yaml.v3 дописывает ключи в существующую карту, поэтому популяцию берём целиком из файла
	defaultMobs := cfg.Simulation.Mobs
	cfg.Simulation.Mobs = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Simulation.Mobs == nil {
		cfg.Simulation.Mobs = defaultMobs
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate проверяет значения, без которых мир не построить
func (c *Config) Validate() error {
	w := c.World
	if w.Width <= 0 || w.Height <= 0 || w.Depth <= 0 {
		return fmt.Errorf("world size must be positive, got %dx%dx%d", w.Width, w.Height, w.Depth)
	}
	if w.SeaLevel < 0 || w.SeaLevel >= w.Height {
		return fmt.Errorf("sea_level %d outside world height %d", w.SeaLevel, w.Height)
	}
	if w.Noise != "" && w.Noise != "sine" && w.Noise != "perlin" {
		return fmt.Errorf("unknown noise %q", w.Noise)
	}
	if c.Chunks.Size <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.Chunks.Size)
	}
	if c.Simulation.TickRateHz <= 0 {
		return fmt.Errorf("tick_rate_hz must be positive, got %d", c.Simulation.TickRateHz)
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("sample_ratio %v outside [0, 1]", c.Telemetry.SampleRatio)
	}
	for name, n := range c.Simulation.Mobs {
		if n < 0 {
			return fmt.Errorf("negative population for %s", name)
		}
	}
	return nil
}
