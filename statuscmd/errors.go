package statuscmd

import "fmt"

// Code classifies why the status command stopped producing blocks.
type Code string

const (
	CodeSpawn     Code = "spawn"
	CodeMalformed Code = "malformed"
	CodeExited    Code = "exited"
)

// Error is a status command failure with an optional cause.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("status command %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("status command %s", e.Code)
}

func (e *Error) Unwrap() error { return e.Err }
