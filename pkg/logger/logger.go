package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config carries the log settings read from the environment. Name, when
// set, is stamped on every entry so aggregated logs stay attributable.
type Config struct {
	Level    string
	Encoding string
	Name     string
}

// New builds the process-wide zap logger. Unknown levels degrade to info
// and unknown encodings to JSON rather than failing startup.
func New(cfg Config) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if parsed, err := zapcore.ParseLevel(cfg.Level); err == nil {
		level.SetLevel(parsed)
	}

	encoding := cfg.Encoding
	if encoding != "console" {
		encoding = "json"
	}

	zapCfg := zap.Config{
		Level:            level,
		Encoding:         encoding,
		EncoderConfig:    encoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	log, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	if cfg.Name != "" {
		log = log.With(zap.String("service", cfg.Name))
	}
	return log, nil
}

func encoderConfig() zapcore.EncoderConfig {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "timestamp"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeDuration = zapcore.StringDurationEncoder
	return ec
}
