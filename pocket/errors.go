package pocket

import (
	"fmt"

	"github.com/pkg/errors"
)

// RedactedValue replaces secret values in error payloads.
const RedactedValue = "[*********]"

// ErrInvalidArgument is matched by every *InvalidArgumentError via errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError reports a rejected argument. Value never holds a raw secret.
type InvalidArgumentError struct {
	Reason   string
	Argument string
	Value    any
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s (argument=%q, value=%v)", e.Reason, e.Argument, e.Value)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func invalidArgument(reason, argument string, value any) error {
	return &InvalidArgumentError{Reason: reason, Argument: argument, Value: value}
}
