package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("GAME_CONFIG", "")
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.World.Width)
	assert.Equal(t, 8, cfg.World.SeaLevel)
	assert.Equal(t, 10*time.Millisecond, cfg.Chunks.Stagger())
	assert.Equal(t, time.Second/60, cfg.Simulation.TickInterval())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_OverridesFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	data := []byte(`
world:
  width: 16
  height: 16
  depth: 16
  sea_level: 5
  noise: perlin
simulation:
  mobs: {zombie: 1}
logging:
  format: json
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.World.Width)
	assert.Equal(t, "perlin", cfg.World.Noise)
	assert.Equal(t, 8, cfg.Chunks.Size, "незаданные поля остаются по умолчанию")
	assert.Equal(t, map[string]int{"zombie": 1}, cfg.Simulation.Mobs)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world: {width: 0}"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestPorts_EnvFallback(t *testing.T) {
	var s ServerConfig
	t.Setenv("GAME_REST_PORT", "")
	t.Setenv("GAME_METRICS_PORT", "9999")
	assert.Equal(t, 8088, s.GetRESTPort())
	assert.Equal(t, 9999, s.GetMetricsPort())

	s.RESTPort = 7000
	assert.Equal(t, 7000, s.GetRESTPort(), "значение из конфига важнее окружения")
}
