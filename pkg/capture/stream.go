package capture

import (
	"os"

	"github.com/shini4i/extra-io/internal/ports"
)

// fdStream redirects one of the os standard stream variables.
type fdStream struct {
	name string
	file **os.File
}

// Stdout returns the process standard output stream.
func Stdout() ports.Stream {
	return &fdStream{name: "stdout", file: &os.Stdout}
}

// Stderr returns the process standard error stream.
func Stderr() ports.Stream {
	return &fdStream{name: "stderr", file: &os.Stderr}
}

func (s *fdStream) Name() string {
	return s.name
}

func (s *fdStream) Redirect(target *os.File) (func() error, error) {
	return redirect(s.file, target)
}
