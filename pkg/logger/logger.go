// Package logger provides opinionated logging capabilities for augmem.
//
// Hook processes own stdout as a protocol surface (the host parses it), so
// diagnostics default to stderr and may additionally fan out to the hook log
// file under ~/.augment/memory-hooks/.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to stderr. Debug lowers the level from Info.
func New(debug bool) *zap.Logger {
	return NewWithWriters(debug, os.Stderr)
}

// NewWithWriters returns a logger that duplicates every entry to each writer.
// With no writers it falls back to stderr.
func NewWithWriters(debug bool, writers ...io.Writer) *zap.Logger {
	if len(writers) == 0 {
		writers = []io.Writer{os.Stderr}
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(consoleEncoder(), multiSink(writers), level)

	return zap.New(core, zap.AddCaller())
}

// consoleEncoder renders human-readable lines with ISO8601 timestamps and
// colored level names.
func consoleEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func multiSink(writers []io.Writer) zapcore.WriteSyncer {
	syncers := make([]zapcore.WriteSyncer, len(writers))
	for i, w := range writers {
		syncers[i] = zapcore.AddSync(w)
	}
	return zapcore.NewMultiWriteSyncer(syncers...)
}
