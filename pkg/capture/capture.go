// Package capture records what an action writes to standard output and
// standard error.
//
// Capturing rewires process-wide descriptors, so only one capture may run at a
// time. Starting another one, nested in an action or from a different
// goroutine, fails with ErrCaptureInProgress. Any other code writing to the
// standard streams while a capture is running ends up in the captured text.
package capture

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/op/go-logging"
	"github.com/shini4i/extra-io/internal/helpers"
	"github.com/shini4i/extra-io/internal/logger"
	"github.com/shini4i/extra-io/internal/ports"
	"github.com/shini4i/extra-io/pkg/strictio"
	"github.com/shini4i/extra-io/pkg/tempio"
	"go.uber.org/multierr"
)

// Dependencies aggregates the collaborators a Capturer needs.
type Dependencies struct {
	// Temp must create files on the OS filesystem, since the streams are
	// pointed at a real descriptor.
	Temp    *tempio.Factory
	Streams []ports.Stream
	Logger  *logging.Logger
}

// Capturer redirects a set of streams into a temporary file around an action.
type Capturer struct {
	temp    *tempio.Factory
	strict  *strictio.IO
	streams []ports.Stream
	log     *logging.Logger
}

// ErrCaptureInProgress is returned when a capture is started while another one
// is still running.
var ErrCaptureInProgress = errors.New("output capture already in progress")

type captured[V, T any] struct {
	output V
	result T
}

var (
	captureMu sync.Mutex

	defaultOnce     sync.Once
	defaultCapturer *Capturer
)

// New constructs a Capturer. By default it captures stdout and stderr into a
// file from tempio.Default.
func New(deps Dependencies) *Capturer {
	if deps.Temp == nil {
		deps.Temp = tempio.Default()
	}
	if deps.Streams == nil {
		deps.Streams = []ports.Stream{Stdout(), Stderr()}
	}
	if deps.Logger == nil {
		deps.Logger = logger.New()
	}

	return &Capturer{
		temp:    deps.Temp,
		strict:  strictio.New(nil),
		streams: deps.Streams,
		log:     deps.Logger,
	}
}

// Default returns the process-wide Capturer for stdout and stderr.
func Default() *Capturer {
	defaultOnce.Do(func() {
		defaultCapturer = New(Dependencies{})
	})
	return defaultCapturer
}

// Output runs action with every stream of c redirected into a fresh temporary
// file and returns what was written together with the action's result.
// Streams are restored in reverse order even when action fails or panics.
// An error from action takes precedence over restore errors.
//
// The text is decoded as UTF-8 and invalid bytes become U+FFFD. Use
// OutputBytes when the action may write arbitrary bytes.
func Output[T any](c *Capturer, action func() (T, error)) (string, T, error) {
	return output(c, action, func(path string) (string, error) {
		return c.strict.ReadFile(path, strictio.UTF8)
	})
}

// OutputBytes is Output returning the captured bytes unchanged.
func OutputBytes[T any](c *Capturer, action func() (T, error)) ([]byte, T, error) {
	return output(c, action, c.strict.ReadFileBytes)
}

func output[V, T any](c *Capturer, action func() (T, error), read func(path string) (V, error)) (V, T, error) {
	if !captureMu.TryLock() {
		var (
			out    V
			result T
		)
		return out, result, ErrCaptureInProgress
	}
	defer captureMu.Unlock()

	out, err := tempio.WithFile(c.temp, func(path string) (captured[V, T], error) {
		result, err := runRedirected(c, path, action)
		if err != nil {
			return captured[V, T]{result: result}, err
		}

		data, err := read(path)
		return captured[V, T]{output: data, result: result}, err
	})

	return out.output, out.result, err
}

// Capture runs Output on the default Capturer.
func Capture[T any](action func() (T, error)) (string, T, error) {
	return Output(Default(), action)
}

// CaptureBytes runs OutputBytes on the default Capturer.
func CaptureBytes[T any](action func() (T, error)) ([]byte, T, error) {
	return OutputBytes(Default(), action)
}

// Run captures the output of an action that produces no value.
func Run(action func() error) (string, error) {
	text, _, err := Capture(func() (struct{}, error) {
		return struct{}{}, action()
	})
	return text, err
}

func runRedirected[T any](c *Capturer, path string, action func() (T, error)) (result T, err error) {
	sink, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return result, err
	}
	defer func() {
		if closeErr := sink.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	// Nothing may be logged while the streams point at the sink.
	c.log.Debugf("Capturing output into [%s]", helpers.Cyan(path))

	var (
		restores []func() error
		names    []string
	)
	defer func() {
		restoreErr := c.restoreAll(names, restores)
		if restoreErr == nil {
			return
		}
		if err != nil {
			c.log.Warningf("Failed to restore streams after failed action: %s", restoreErr)
			return
		}
		err = restoreErr
	}()

	for _, stream := range c.streams {
		restore, redirectErr := stream.Redirect(sink)
		if redirectErr != nil {
			return result, fmt.Errorf("failed to redirect %s: %w", stream.Name(), redirectErr)
		}
		restores = append(restores, restore)
		names = append(names, stream.Name())
	}

	return action()
}

// restoreAll runs every restore in reverse order, whether or not earlier ones failed.
func (c *Capturer) restoreAll(names []string, restores []func() error) error {
	var err error
	for i := len(restores) - 1; i >= 0; i-- {
		if restoreErr := restores[i](); restoreErr != nil {
			err = multierr.Append(err, fmt.Errorf("failed to restore %s: %w", names[i], restoreErr))
		}
	}
	return err
}
