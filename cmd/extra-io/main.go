package main

import (
	"errors"
	"os"

	"github.com/shini4i/extra-io/cmd/extra-io/command"
	"github.com/shini4i/extra-io/internal/logger"
)

var version = "local"

func main() {
	err := command.Execute(command.Options{
		Version:     version,
		InitLogging: logger.Init,
	}, nil)

	switch {
	case err == nil:
	case errors.Is(err, command.ErrFilesDiffer):
		os.Exit(1)
	default:
		logger.New().Error(err)
		os.Exit(2)
	}
}
