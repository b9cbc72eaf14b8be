package internal

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LevelSet map[zapcore.Level]bool

func (ls LevelSet) Enabled(l zapcore.Level) bool {
	return ls[l]
}

var logLevels = LevelSet{zapcore.InfoLevel: true}

// SetAllowedLogLevels chooses which levels reach stdout and rebuilds the
// global logger. Warnings and errors always go to stderr.
func SetAllowedLogLevels(levels ...zapcore.Level) {
	newLevels := make(LevelSet)
	for _, lvl := range levels {
		newLevels[lvl] = true
	}
	logLevels = newLevels
	InitLogger()
}

func InitLogger() {
	InitLoggerWithWriters(os.Stdout, os.Stderr)
}

func InitLoggerWithWriters(stdout, stderr io.Writer) {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:       "", // Disable timestamp
		LevelKey:      "", // Disable log level
		CallerKey:     "", // Disable caller
		FunctionKey:   "", // Disable function name
		StacktraceKey: "", // Disable stacktrace
		MessageKey:    "msg",
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}

	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)

	stdoutCore := zapcore.NewCore(consoleEncoder, zapcore.Lock(zapcore.AddSync(stdout)), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l < zapcore.WarnLevel && logLevels.Enabled(l)
	}))

	stderrCore := zapcore.NewCore(consoleEncoder, zapcore.Lock(zapcore.AddSync(stderr)), zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.WarnLevel
	}))

	logger := zap.New(zapcore.NewTee(stdoutCore, stderrCore))

	zap.ReplaceGlobals(logger)
}
