package adapter

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/t-okano/brieflet/pkg/model"
)

const (
	maxBackendAttempts = 4
	baseBackoff        = 500 * time.Millisecond
)

// retryWithBackoff runs fn with exponential backoff for errors the
// backend classifies as transient. Non-transient errors surface
// immediately; exhausting the attempt budget converts the last transient
// error into a fatal synthesis failure.
func retryWithBackoff(ctx context.Context, transient func(error) bool, fn func() error) error {
	var lastErr error
	delay := baseBackoff

	for attempt := 0; attempt < maxBackendAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return goerr.Wrap(ctx.Err(), "backend call canceled")
			}
			delay *= 2
		}

		err := fn()
		if err == nil {
			return nil
		}
		if !transient(err) {
			return err
		}
		lastErr = err
	}

	return goerr.Wrap(model.ErrBackendTransient, "retry budget exhausted",
		goerr.V("attempts", maxBackendAttempts), goerr.V("cause", lastErr.Error()))
}
