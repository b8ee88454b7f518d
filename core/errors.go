package core

import (
	"encoding/json"
	"errors"
	"fmt"

	"event-planner/pkg/schema"
)

var (
	ErrEventNotFound       = errors.New("event not found")
	ErrEventFull           = errors.New("event is full")
	ErrExpenseNotFound     = errors.New("expense not found")
	ErrExpenseFull         = errors.New("expense has no quantity left")
	ErrParticipantExists   = errors.New("participant already registered")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrUnknownExpenseKind  = errors.New("unknown expense kind")
	ErrSchemaNotFound      = errors.New("schema not found")
	ErrEmptyBody           = errors.New("request body is empty")
	ErrNotAnObject         = errors.New("request body is not a JSON object")
)

type Error struct {
	Message string   `json:"message,omitempty"`
	Path    string   `json:"path,omitempty"`
	Err     []string `json:"err,omitempty"`
}

func NewError(message string, errs ...error) *Error {
	return &Error{
		Message: message,
		Err: func() []string {
			var msgs []string

			for _, err := range errs {
				if err != nil {
					msgs = append(msgs, err.Error())
				}
			}

			return msgs
		}(),
	}
}

// NewValidationError keeps the failing field path of a schema rejection.
func NewValidationError(message string, err error) *Error {
	e := NewError(message, err)

	var fieldErr *schema.FieldError
	if errors.As(err, &fieldErr) {
		e.Path = fieldErr.Path.String()
	}

	return e
}

func (e *Error) Error() string {
	//nolint:errchkjson
	data, _ := json.Marshal(e)
	return string(data)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}

	if len(e.Err) == 0 {
		return nil
	}

	errs := make([]error, len(e.Err))
	for i, err := range e.Err {
		errs[i] = fmt.Errorf("%s", err)
	}

	return errors.Join(errs...)
}

func (e *Error) Messages() []string {
	return e.Err
}
