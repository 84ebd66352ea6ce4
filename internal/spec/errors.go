package spec

import "fmt"

// MalformedSpecError is returned when a document cannot be parsed as
// structured data.
type MalformedSpecError struct {
	Path string
	Err  error
}

func (e *MalformedSpecError) Error() string {
	return fmt.Sprintf("malformed spec %s: %v", e.Path, e.Err)
}

func (e *MalformedSpecError) Unwrap() error {
	return e.Err
}
