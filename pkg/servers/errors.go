package servers

import (
	"errors"
	"fmt"
)

var (
	ErrStart = errors.New("failed to start")
	ErrStop  = errors.New("failed to stop")
)

// ErrServerFailedToStart wraps both ErrStart and the listener error.
func ErrServerFailedToStart(name string, err error) error {
	return fmt.Errorf("server %s %w: %w", name, ErrStart, err)
}

func ErrServerFailedToStop(name string, err error) error {
	return fmt.Errorf("server %s %w: %w", name, ErrStop, err)
}
