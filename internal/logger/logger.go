// Package logger configures the go-logging backend used across extra-io.
package logger

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Module is the go-logging module every extra-io logger is registered under.
const Module = "extra-io"

var format = logging.MustStringFormatter(`%{color}%{level:.4s}%{color:reset} %{message}`)

// Init installs a stderr backend, at DEBUG when debug is set and INFO otherwise.
func Init(debug bool) {
	InitWithWriter(os.Stderr, debug)
}

// InitWithWriter installs a backend writing to w.
func InitWithWriter(w io.Writer, debug bool) {
	backend := logging.NewLogBackend(w, "", 0)
	leveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, format))

	level := logging.INFO
	if debug {
		level = logging.DEBUG
	}
	leveled.SetLevel(level, "")

	logging.SetBackend(leveled)
}

// New returns the shared extra-io logger.
func New() *logging.Logger {
	return logging.MustGetLogger(Module)
}
