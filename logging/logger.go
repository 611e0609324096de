package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger *zap.Logger

// InitLogger builds the process-wide zap logger. Development mode gets the
// colored console encoder, production gets JSON.
func InitLogger(production bool) error {
	var config zap.Config

	if production {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var err error
	Logger, err = config.Build()
	if err != nil {
		return err
	}
	return nil
}

// Sync flushes buffered log entries. Safe to call before exit.
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

func Sugar() *zap.SugaredLogger {
	if Logger == nil {
		Logger = zap.NewNop()
	}
	return Logger.Sugar()
}
