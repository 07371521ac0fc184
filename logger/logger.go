package logger

import "go.uber.org/zap"

// L is the process-wide logger. Init must run before anything logs.
var L = zap.NewNop()

func Init(environment string) error {
	var (
		l   *zap.Logger
		err error
	)
	if environment == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	L = l
	return nil
}

func Sync() {
	_ = L.Sync()
}
