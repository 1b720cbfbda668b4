package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("громко"), "неизвестный уровень — info")
}

func TestPackageCallsBeforeInit(t *testing.T) {
	CloseDefaultLogger()
	assert.NotPanics(t, func() {
		Info("до инициализации %d", 1)
		Debug("тишина")
	})
}

func TestLoggerManager(t *testing.T) {
	t.Setenv("GAME_LOG_LEVEL", "error")
	lm := GetLoggerManager()
	defer lm.CloseAll()

	a, err := lm.GetLogger("world", Options{Format: "json"})
	require.NoError(t, err)
	b, err := lm.GetLogger("world", Options{})
	require.NoError(t, err)
	assert.Same(t, a, b, "логгер компонента создаётся один раз")
	assert.False(t, a.level.Enabled(zapcore.WarnLevel), "уровень берётся из GAME_LOG_LEVEL")

	require.NoError(t, lm.SetLogLevel("world", zapcore.DebugLevel))
	assert.True(t, a.level.Enabled(zapcore.DebugLevel))
	assert.Error(t, lm.SetLogLevel("нет-такого", zapcore.DebugLevel))

	assert.Contains(t, lm.ListComponents(), "world")
	assert.Equal(t, "world.chunks", a.Named("chunks").Component())
}

func TestDefaultLogger(t *testing.T) {
	SetDefaultLogger(NewNop("test"))
	defer CloseDefaultLogger()
	assert.NotPanics(t, func() {
		Info("ok %s", "x")
		Warn("w")
		Error("e")
	})
}
