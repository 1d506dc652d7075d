// Package retry repeats an operation until it succeeds or runs out of attempts.
package retry

import (
	"errors"
	"io/fs"
)

// DefaultAttempts is the attempt budget used for temporary resource creation.
const DefaultAttempts = 5

// Predicate decides whether a failed attempt may be retried.
type Predicate func(err error) bool

// Always retries every failure.
func Always(error) bool {
	return true
}

// IfExists retries only "already exists" failures.
func IfExists(err error) bool {
	return errors.Is(err, fs.ErrExist)
}

// Do runs op until it succeeds, predicate rejects the error, or maxAttempts
// consecutive failures have happened. The last error is returned unchanged.
// There is no delay between attempts. op always runs at least once.
func Do[T any](predicate Predicate, maxAttempts int, op func() (T, error)) (T, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var (
		result T
		err    error
	)

	for attempt := 1; ; attempt++ {
		result, err = op()
		if err == nil {
			return result, nil
		}

		if attempt >= maxAttempts || !predicate(err) {
			var zero T
			return zero, err
		}
	}
}
