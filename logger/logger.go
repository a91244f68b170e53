package logger

import "go.uber.org/zap"

// Init installs the global zap logger. Development mode gets human-readable
// console output, everything else gets production JSON.
func Init(environment string) error {
	var (
		l   *zap.Logger
		err error
	)

	if environment == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(l)

	return nil
}
