// Package logging создает структурированный логгер zap для всего приложения.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New создает логгер заданного уровня.
// Уровень debug включает режим разработки с читаемым выводом.
func New(level string) (*zap.SugaredLogger, error) {
	var cfg zap.Config

	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("неизвестный уровень логирования %q: %w", level, err)
	}

	if lvl == zapcore.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("не удалось создать логгер zap: %w", err)
	}

	return logger.Sugar(), nil
}

// Nop логгер, который ничего не пишет
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// LeveledLogger адаптирует SugaredLogger к интерфейсу логгера с уровнями
// (msg + пары ключ/значение), который ожидают HTTP клиенты.
type LeveledLogger struct {
	L *zap.SugaredLogger
}

func (l LeveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.L.Errorw(msg, keysAndValues...)
}

func (l LeveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.L.Warnw(msg, keysAndValues...)
}

func (l LeveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.L.Infow(msg, keysAndValues...)
}

func (l LeveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.L.Debugw(msg, keysAndValues...)
}
