package tempio

import "github.com/shini4i/extra-io/internal/helpers"

// WithFile creates a temporary file, runs action with its path and removes the
// file afterwards, on success, error and panic alike. An error from action takes
// precedence over an error from the removal.
func WithFile[T any](f *Factory, action func(path string) (T, error)) (result T, err error) {
	handle, err := f.NewFile()
	if err != nil {
		return result, err
	}
	defer f.release(handle, &err)

	return action(handle.Path)
}

// WithDir is WithFile for a temporary directory, removed recursively.
func WithDir[T any](f *Factory, action func(path string) (T, error)) (result T, err error) {
	handle, err := f.NewDir()
	if err != nil {
		return result, err
	}
	defer f.release(handle, &err)

	return action(handle.Path)
}

// WithTempFile runs WithFile on the default Factory.
func WithTempFile[T any](action func(path string) (T, error)) (T, error) {
	return WithFile(Default(), action)
}

// WithTempDir runs WithDir on the default Factory.
func WithTempDir[T any](action func(path string) (T, error)) (T, error) {
	return WithDir(Default(), action)
}

func (f *Factory) release(handle Handle, err *error) {
	deleteErr := handle.Delete()
	if deleteErr == nil {
		return
	}

	if *err != nil {
		f.log.Warningf("Failed to remove [%s]: %s", helpers.Yellow(handle.Path), deleteErr)
		return
	}

	*err = deleteErr
}
