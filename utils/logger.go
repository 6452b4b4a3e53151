package utils

import (
	"go.uber.org/zap"
)

// Logger is the process-wide structured logger, set up once in main.
var Logger *zap.Logger = zap.NewNop()

func InitLogger(debug bool) error {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	Logger = logger
	return nil
}
