package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mcsdevv/webanalyzer/internal/config"
)

// New builds the application logger from configuration. Console output
// always goes to stdout; when LogFile is set a JSON core with rotation is
// teed in alongside it.
func New(cfg config.LoggerConfig) *zap.Logger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	consoleCore := zapcore.NewCore(encoder(cfg.Format), zapcore.Lock(os.Stdout), level)
	cores := []zapcore.Core{consoleCore}

	if cfg.LogFile != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
		cores = append(cores, zapcore.NewCore(encoder("json"), fileWriter, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel))
}

func encoder(format string) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	if format == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(encoderConfig)
	}
	return zapcore.NewJSONEncoder(encoderConfig)
}

// Nop returns a logger that discards everything. Intended for tests.
func Nop() *zap.Logger {
	return zap.NewNop()
}
