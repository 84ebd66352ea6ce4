package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/roach88/commodex/internal/ledger"
	"github.com/roach88/commodex/internal/spec"
)

// loadSpec reads the specification at path, reporting failures as command
// errors.
func loadSpec(f *OutputFormatter, path string) (*spec.Spec, error) {
	s, err := spec.Load(path)
	if err == nil {
		return s, nil
	}

	var malformed *spec.MalformedSpecError
	switch {
	case errors.As(err, &malformed):
		return nil, commandError(f, ErrCodeMalformedSpec, err.Error())
	case errors.Is(err, fs.ErrNotExist):
		return nil, commandError(f, ErrCodeNotFound, fmt.Sprintf("spec not found: %s", path))
	default:
		return nil, commandError(f, ErrCodeGeneric, err.Error())
	}
}

// openLedger opens the configured ledger. It returns nil when no ledger
// path is configured.
func (o *RootOptions) openLedger() (*ledger.Ledger, error) {
	if o.Config == nil || o.Config.Ledger.Path == "" {
		return nil, nil
	}
	return ledger.Open(o.Config.Ledger.Path)
}

// recordRun appends run to the configured ledger, if any.
func (o *RootOptions) recordRun(ctx context.Context, f *OutputFormatter, run ledger.Run) error {
	l, err := o.openLedger()
	if err != nil {
		return commandError(f, ErrCodeLedger, err.Error())
	}
	if l == nil {
		return nil
	}
	defer func() {
		if closeErr := l.Close(); closeErr != nil {
			o.Logger.Error("error closing ledger", "error", closeErr)
		}
	}()

	recorded, err := l.Record(ctx, run)
	if err != nil {
		return commandError(f, ErrCodeLedger, err.Error())
	}
	o.Logger.Debug("run recorded", "id", recorded.ID, "seq", recorded.Seq, "kind", recorded.Kind)
	return nil
}
