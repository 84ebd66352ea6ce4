package generate

import (
	"fmt"
	"strings"
)

// UnknownColumnError is returned when the declared schema names a column the
// generator cannot produce.
type UnknownColumnError struct {
	Column string
	Output string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("output %s declares column %q which the generator cannot produce (known: %s)",
		e.Output, e.Column, strings.Join(CanonicalColumns, ", "))
}
