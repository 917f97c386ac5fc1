package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	KeyProvider = "provider"
	KeyResult   = "result"
	KeyError    = "error"

	ValueSuccess = "success"
	ValueFail    = "fail"
)

// New returns a console logger writing to stderr at the given level, keeping
// stdout free for reports and raw output.
func New(level zapcore.Level) *zap.SugaredLogger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		zap.NewAtomicLevelAt(level),
	)

	return zap.New(core).Sugar()
}

// ParseLevel parses a level name, falling back to info
func ParseLevel(s string) (zapcore.Level, error) {
	level := zapcore.InfoLevel
	if s == "" {
		return level, nil
	}
	err := level.Set(s)
	return level, err
}
