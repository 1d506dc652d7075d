// Package tempio creates uniquely named temporary files and directories and
// guarantees their removal.
package tempio

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/op/go-logging"
	"github.com/shini4i/extra-io/internal/helpers"
	"github.com/shini4i/extra-io/internal/logger"
	"github.com/shini4i/extra-io/pkg/retry"
	"github.com/shini4i/extra-io/pkg/uniqueid"
	"github.com/spf13/afero"
)

const (
	filePrefix = "extra-file-"
	dirPrefix  = "extra-dir-"
)

// Dependencies aggregates the collaborators a Factory needs.
type Dependencies struct {
	FS     afero.Fs
	IDs    *uniqueid.Source
	Logger *logging.Logger
}

// Factory builds temporary resources under a single root.
type Factory struct {
	cfg Config
	fs  afero.Fs
	ids *uniqueid.Source
	log *logging.Logger
}

// Handle is a created temporary resource together with its deleter.
type Handle struct {
	Path string
	// Delete removes the resource. Only the first call does any work; later
	// calls return the first result. A resource that is already gone is not an error.
	Delete func() error
}

var (
	defaultOnce    sync.Once
	defaultFactory *Factory
)

// New constructs a Factory, filling unset dependencies with OS-backed defaults.
func New(cfg Config, deps Dependencies) *Factory {
	if deps.FS == nil {
		deps.FS = afero.NewOsFs()
	}
	if deps.IDs == nil {
		deps.IDs = uniqueid.Default()
	}
	if deps.Logger == nil {
		deps.Logger = logger.New()
	}
	if cfg.Attempts < 1 {
		cfg.Attempts = 1
	}

	return &Factory{
		cfg: cfg,
		fs:  deps.FS,
		ids: deps.IDs,
		log: deps.Logger,
	}
}

// Default returns the process-wide Factory working on the OS filesystem.
func Default() *Factory {
	defaultOnce.Do(func() {
		defaultFactory = New(NewConfig(), Dependencies{})
	})
	return defaultFactory
}

// Fs returns the filesystem resources are created on.
func (f *Factory) Fs() afero.Fs {
	return f.fs
}

// NewFile creates an empty, closed file directly under the root.
// Any creation failure is retried until the attempt budget runs out.
func (f *Factory) NewFile() (Handle, error) {
	root := f.cfg.root()

	path, err := retry.Do(retry.Always, f.cfg.Attempts, func() (string, error) {
		file, err := afero.TempFile(f.fs, root, fmt.Sprintf("%s%d-", filePrefix, f.ids.Next()))
		if err != nil {
			f.log.Debugf("Failed to create temporary file in [%s]: %s", root, err)
			return "", err
		}

		name := file.Name()
		if err := file.Close(); err != nil {
			_ = f.fs.Remove(name)
			return "", err
		}

		return name, nil
	})
	if err != nil {
		return Handle{}, err
	}

	f.log.Debugf("Created temporary file [%s]", helpers.Cyan(path))

	return f.newHandle(path, f.fs.Remove), nil
}

// NewDir creates an empty directory directly under the root. Only name
// collisions are retried; any other failure is returned at once.
func (f *Factory) NewDir() (Handle, error) {
	root := f.cfg.root()

	path, err := retry.Do(retry.IfExists, f.cfg.Attempts, func() (string, error) {
		path := filepath.Join(root, fmt.Sprintf("%s%d", dirPrefix, f.ids.Next()))
		if err := f.fs.Mkdir(path, 0o700); err != nil {
			f.log.Debugf("Failed to create temporary directory [%s]: %s", path, err)
			return "", err
		}
		return path, nil
	})
	if err != nil {
		return Handle{}, err
	}

	f.log.Debugf("Created temporary directory [%s]", helpers.Cyan(path))

	return f.newHandle(path, f.fs.RemoveAll), nil
}

func (f *Factory) newHandle(path string, remove func(string) error) Handle {
	var (
		once sync.Once
		err  error
	)

	return Handle{
		Path: path,
		Delete: func() error {
			once.Do(func() {
				err = removeIfPresent(remove, path)
				if err == nil {
					f.log.Debugf("Removed [%s]", helpers.Cyan(path))
				}
			})
			return err
		},
	}
}

func removeIfPresent(remove func(string) error, path string) error {
	if err := remove(path); err != nil && !isAbsent(err) {
		return err
	}
	return nil
}

// isAbsent reports whether err means the target no longer exists. fs.ErrNotExist
// matches ENOENT on Unix and ERROR_FILE_NOT_FOUND / ERROR_PATH_NOT_FOUND on Windows.
func isAbsent(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// NewFile creates a temporary file with the default Factory.
func NewFile() (Handle, error) {
	return Default().NewFile()
}

// NewDir creates a temporary directory with the default Factory.
func NewDir() (Handle, error) {
	return Default().NewDir()
}
