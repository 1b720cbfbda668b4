package logging

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options — параметры логирования из конфигурации
type Options struct {
	Level  string // debug | info | warn | error
	Format string // console | json
}

// Logger — логгер компонента поверх zap
type Logger struct {
	component string
	sugar     *zap.SugaredLogger
	level     zap.AtomicLevel
}

var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

// ParseLevel переводит строку в уровень zap; неизвестное значение — info
func ParseLevel(s string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// NewLogger создаёт логгер компонента. GAME_LOG_LEVEL перекрывает уровень из конфига.
func NewLogger(component string, opts Options) (*Logger, error) {
	if env := os.Getenv("GAME_LOG_LEVEL"); env != "" {
		opts.Level = env
	}
	level := zap.NewAtomicLevelAt(ParseLevel(opts.Level))

	var zapCfg zap.Config
	if opts.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = level

	base, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger %s: %w", component, err)
	}
	return &Logger{
		component: component,
		sugar:     base.Named(component).Sugar(),
		level:     level,
	}, nil
}

// NewNop возвращает логгер, который ничего не пишет
func NewNop(component string) *Logger {
	return &Logger{
		component: component,
		sugar:     zap.NewNop().Sugar(),
		level:     zap.NewAtomicLevel(),
	}
}

// Component возвращает имя компонента
func (l *Logger) Component() string { return l.component }

// SetLevel меняет уровень на лету
func (l *Logger) SetLevel(level zapcore.Level) { l.level.SetLevel(level) }

// Named возвращает дочерний логгер подкомпонента
func (l *Logger) Named(name string) *Logger {
	return &Logger{
		component: l.component + "." + name,
		sugar:     l.sugar.Named(name),
		level:     l.level,
	}
}

func (l *Logger) Debug(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.sugar.Infof(format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.sugar.Warnf(format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

// Close сбрасывает буферы
func (l *Logger) Close() error {
	// stdout/stderr на некоторых платформах возвращают EINVAL на Sync
	_ = l.sugar.Sync()
	return nil
}

// Zap возвращает базовый zap-логгер (для gin и сторонних библиотек)
func (l *Logger) Zap() *zap.Logger { return l.sugar.Desugar() }

// InitDefaultLogger создаёт глобальный логгер процесса
func InitDefaultLogger(component string, opts Options) error {
	logger, err := GetLoggerManager().GetLogger(component, opts)
	if err != nil {
		return err
	}
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
	return nil
}

// SetDefaultLogger подменяет глобальный логгер (тесты)
func SetDefaultLogger(l *Logger) {
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

// CloseDefaultLogger закрывает все логгеры процесса
func CloseDefaultLogger() {
	_ = GetLoggerManager().CloseAll()
	defaultMu.Lock()
	defaultLogger = nil
	defaultMu.Unlock()
}

func current() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// До InitDefaultLogger вызовы ничего не делают

func Debug(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Debug(format, args...)
	}
}

func Info(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Info(format, args...)
	}
}

func Warn(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Warn(format, args...)
	}
}

func Error(format string, args ...interface{}) {
	if l := current(); l != nil {
		l.Error(format, args...)
	}
}
