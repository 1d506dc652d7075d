package tempio

import (
	"io"
	"os"
	"syscall"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/op/go-logging"
	"github.com/shini4i/extra-io/pkg/uniqueid"
	"github.com/spf13/afero"
)

func setupTestLogger(t *testing.T, name string) *logging.Logger {
	logger := logging.MustGetLogger(name)
	logging.SetBackend(logging.NewLogBackend(io.Discard, "", 0))
	t.Cleanup(func() {
		logging.SetBackend(logging.NewLogBackend(os.Stdout, "", 0))
	})
	return logger
}

// newTestFactory builds a Factory whose counter starts at 1.
func newTestFactory(t *testing.T, fs afero.Fs, root string, opts ...ConfigOption) *Factory {
	t.Helper()

	return New(NewConfig(append([]ConfigOption{WithRoot(root)}, opts...)...), Dependencies{
		FS:     fs,
		IDs:    uniqueid.New(clock.NewMock()),
		Logger: setupTestLogger(t, t.Name()),
	})
}

// flakyFs fails the first openFailures file opens and every mkdir while mkdirErr is set.
type flakyFs struct {
	afero.Fs
	openFailures int
	mkdirErr     error
	removeErr    error
	openCalls    int
	mkdirCalls   int
	removeCalls  int
}

func (f *flakyFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	f.openCalls++
	if f.openCalls <= f.openFailures {
		return nil, &os.PathError{Op: "open", Path: name, Err: syscall.EIO}
	}
	return f.Fs.OpenFile(name, flag, perm)
}

func (f *flakyFs) Mkdir(name string, perm os.FileMode) error {
	f.mkdirCalls++
	if f.mkdirErr != nil {
		return &os.PathError{Op: "mkdir", Path: name, Err: f.mkdirErr}
	}
	return f.Fs.Mkdir(name, perm)
}

func (f *flakyFs) Remove(name string) error {
	f.removeCalls++
	if f.removeErr != nil {
		return &os.PathError{Op: "remove", Path: name, Err: f.removeErr}
	}
	return f.Fs.Remove(name)
}

func (f *flakyFs) RemoveAll(path string) error {
	f.removeCalls++
	if f.removeErr != nil {
		return &os.PathError{Op: "unlinkat", Path: path, Err: f.removeErr}
	}
	return f.Fs.RemoveAll(path)
}
