// Package logger builds the JSON zap logger shared by the API process.
package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON logger writing to stdout. Every entry carries the
// service name and durations are written in milliseconds.
func New(serviceName, logLevel string) *zap.Logger {
	return newLogger(os.Stdout, serviceName, logLevel)
}

func newLogger(w io.Writer, serviceName, logLevel string) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.Lock(zapcore.AddSync(w)),
		zap.NewAtomicLevelAt(ParseLevel(logLevel)),
	)
	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
	).With(zap.String("service", serviceName))
}

func encoderConfig() zapcore.EncoderConfig {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "timestamp"
	ec.MessageKey = "message"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeDuration = zapcore.MillisDurationEncoder
	return ec
}

// ParseLevel accepts zap level names in any case. Unknown names fall back
// to info.
func ParseLevel(logLevel string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(logLevel)))
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
