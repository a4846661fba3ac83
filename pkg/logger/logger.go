package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level      string
	Filename   string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// New builds a JSON zap logger. Output goes to stdout, and additionally to a
// rotated file when Filename is set.
func New(cfg Config) (*zap.Logger, error) {
	level := new(zapcore.Level)
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, err
	}

	core := zapcore.NewCore(newEncoder(), newWriter(cfg), level)
	return zap.New(core, zap.AddCaller()), nil
}

// NewNop returns a logger that discards everything; used by tests.
func NewNop() *zap.Logger {
	return zap.NewNop()
}

func newEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

func newWriter(cfg Config) zapcore.WriteSyncer {
	if cfg.Filename == "" {
		return zapcore.AddSync(os.Stdout)
	}

	rotated := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
	return zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout), zapcore.AddSync(rotated))
}
