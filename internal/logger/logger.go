package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the shared application logger. It starts as a no-op so library code
// and tests can log before Init; the engine calls Init at startup.
var Log = zap.NewNop()

var initialized bool

// Init configures the global logger. Safe to call more than once.
func Init() {
	if initialized {
		return
	}
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, err := config.Build()
	if err != nil {
		// Keep the no-op logger rather than failing engine startup
		return
	}
	Log = logger
	initialized = true
}
