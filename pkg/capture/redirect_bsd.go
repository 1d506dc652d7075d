//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package capture

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"golang.org/x/sys/unix"
)

// redirect points the descriptor behind stream at target. The original
// descriptor is kept as a duplicate until restore puts it back.
func redirect(stream **os.File, target *os.File) (func() error, error) {
	fd := int((*stream).Fd())

	saved, err := unix.Dup(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to duplicate descriptor %d: %w", fd, err)
	}

	if err := unix.Dup2(int(target.Fd()), fd); err != nil {
		_ = unix.Close(saved)
		return nil, fmt.Errorf("failed to redirect descriptor %d: %w", fd, err)
	}

	return func() error {
		var err error
		if dupErr := unix.Dup2(saved, fd); dupErr != nil {
			err = fmt.Errorf("failed to restore descriptor %d: %w", fd, dupErr)
		}
		return multierr.Append(err, unix.Close(saved))
	}, nil
}
