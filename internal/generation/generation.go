package generation

import (
	"context"
	"errors"
	"fmt"
)

// Generator is the single remote capability the pipeline depends on:
// transform text according to an instruction.
type Generator interface {
	Generate(ctx context.Context, text string, instruction string) (string, error)
}

// ServiceError wraps a failure of the generation service. Transient failures
// (rate limits, server errors, transport faults) are worth retrying;
// permanent ones are not.
type ServiceError struct {
	Transient bool
	Err       error
}

func (e *ServiceError) Error() string {
	kind := "permanent"
	if e.Transient {
		kind = "transient"
	}

	return fmt.Sprintf("generation service error (%s): %v", kind, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is a retryable service failure.
func IsTransient(err error) bool {
	var serviceErr *ServiceError

	return errors.As(err, &serviceErr) && serviceErr.Transient
}
