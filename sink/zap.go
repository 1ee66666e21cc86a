package sink

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Zap adapts a *zap.Logger.
//
// Zap's fatal and panic levels terminate the program, so Fatal and Unknown
// are written at error level and tagged with a "severity" field instead.
type Zap struct {
	logger *zap.Logger
}

// NewZap wraps logger. A nil logger is replaced by zap.NewNop.
func NewZap(logger *zap.Logger) *Zap {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Zap{logger: logger}
}

func (z *Zap) Debug(msg string) { z.logger.Debug(msg) }
func (z *Zap) Info(msg string)  { z.logger.Info(msg) }
func (z *Zap) Warn(msg string)  { z.logger.Warn(msg) }
func (z *Zap) Error(msg string) { z.logger.Error(msg) }

func (z *Zap) Fatal(msg string) {
	z.logger.Error(msg, zap.String("severity", LevelFatal.String()))
}

func (z *Zap) Unknown(msg string) {
	z.logger.Error(msg, zap.String("severity", LevelUnknown.String()))
}

// zapLevel maps a sink level onto the zap level used to build loggers.
func zapLevel(level Level) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}
