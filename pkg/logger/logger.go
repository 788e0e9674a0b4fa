package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Log struct {
	LogLevel zapcore.Level `yaml:"level" envconfig:"LOG_LEVEL" default:"info"`
	// Sink is a zap output path; stdout when empty.
	Sink string `yaml:"sink" envconfig:"LOG_SINK"`
}

func NewLogger(cfg Log, service string) *zap.Logger {
	zCfg := zap.NewProductionConfig()
	zCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	zCfg.EncoderConfig.TimeKey = "ts"
	zCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zCfg.DisableStacktrace = cfg.LogLevel > zapcore.DebugLevel
	if cfg.Sink != "" {
		zCfg.OutputPaths = []string{cfg.Sink}
	}
	log, err := zCfg.Build()
	if err != nil {
		log = zap.NewExample()
		log.Error("logger build, fallback to example logger", zap.Error(err))
	}
	return log.Named(service)
}
