package ports

import (
	"os"
)

// Stream is a process-wide standard stream that can be pointed at another file
// for a while.
type Stream interface {
	Name() string
	// Redirect sends everything written to the stream into target until the
	// returned restore function is called. restore must be called exactly once.
	Redirect(target *os.File) (restore func() error, err error)
}
