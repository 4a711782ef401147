package booking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCancelled is the control signal raised when the guest cancels an
	// in-progress booking. It is not a failure: callers unwind to idle.
	ErrCancelled = errors.New("booking cancelled")

	ErrUnknownRoom = errors.New("unknown room type")
	ErrReference   = errors.New("generate booking reference")
)

type AvailabilityError struct {
	errors []string
}

func NewAvailabilityError() *AvailabilityError {
	return &AvailabilityError{}
}

func IsAvailabilityError(err error) *AvailabilityError {
	if err == nil {
		return nil
	}

	var availabilityError *AvailabilityError

	if errors.As(err, &availabilityError) {
		return availabilityError
	}

	return nil
}

func (e *AvailabilityError) AddUnavailableSelection(qty int, roomType string, r DateRange) {
	e.errors = append(e.errors, fmt.Sprintf(
		"Sorry, %d %s(s) not available for %s. Please try different rooms or dates.",
		qty, roomType, r,
	))
}

func (e *AvailabilityError) Error() string {
	return strings.Join(e.errors, " ")
}

func (e *AvailabilityError) Fields() []string {
	return e.errors
}

func (e *AvailabilityError) Count() int {
	return len(e.errors)
}

// InputError accumulates per-field messages for input that parsed badly or
// violated a business rule. Its Error text is user-facing.
type InputError struct {
	messages []string
	fields   map[string][]string
}

func NewInputError() *InputError {
	return &InputError{
		fields: make(map[string][]string),
	}
}

func IsInputError(err error) *InputError {
	if err == nil {
		return nil
	}

	var inputError *InputError

	if errors.As(err, &inputError) {
		return inputError
	}

	return nil
}

func (ie *InputError) Add(field, msg string) {
	ie.messages = append(ie.messages, msg)
	ie.fields[field] = append(ie.fields[field], msg)
}

func (ie *InputError) Error() string {
	return strings.Join(ie.messages, " ")
}

func (ie *InputError) Fields() map[string][]string {
	return ie.fields
}
