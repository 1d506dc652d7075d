//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package capture

import "os"

// redirect swaps the stream variable itself. Writers holding the original
// *os.File, and anything below the Go runtime, are not captured here.
func redirect(stream **os.File, target *os.File) (func() error, error) {
	original := *stream
	*stream = target

	return func() error {
		*stream = original
		return nil
	}, nil
}
