package tool

import "fmt"

// ErrToolNotFound reports a call to a name no tool is registered under,
// for example a GitHub tool when only Twitter is configured.
type ErrToolNotFound struct {
	Name string
}

func (e *ErrToolNotFound) Error() string {
	return fmt.Sprintf("tool: not found: %s", e.Name)
}

// ErrInvalidArguments wraps a failure to decode call arguments into the
// tool's argument struct.
type ErrInvalidArguments struct {
	Name string
	Err  error
}

func (e *ErrInvalidArguments) Error() string {
	return fmt.Sprintf("tool: %s: invalid arguments: %v", e.Name, e.Err)
}

func (e *ErrInvalidArguments) Unwrap() error { return e.Err }

// ErrToolAlreadyRegistered reports a duplicate name passed to Register.
type ErrToolAlreadyRegistered struct {
	Name string
}

func (e *ErrToolAlreadyRegistered) Error() string {
	return fmt.Sprintf("tool: already registered: %s", e.Name)
}
