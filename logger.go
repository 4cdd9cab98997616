package icon

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func loggerEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "date",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// NewLogger returns a console logger on stderr. Debug enables debug level
// output, which includes every request sent to the node.
func NewLogger(debug bool) *zap.Logger {
	return NewLoggerTo(os.Stderr, debug, false)
}

// NewLoggerTo writes to w, as JSON lines when json is set.
func NewLoggerTo(w io.Writer, debug, json bool) *zap.Logger {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}

	encoder := zapcore.NewConsoleEncoder(loggerEncoderConfig())
	if json {
		encoder = zapcore.NewJSONEncoder(loggerEncoderConfig())
	}

	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), level))
}
