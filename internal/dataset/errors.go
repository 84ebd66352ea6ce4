package dataset

import "fmt"

// IOError reports a filesystem failure while reading or writing a dataset.
type IOError struct {
	Op   string // "mkdir", "create", "write", "rename", "read", "parse"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
