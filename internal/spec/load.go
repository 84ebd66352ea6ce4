package spec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// Load reads the specification document at path.
//
// Files ending in .cue are evaluated with CUE and must be concrete; every
// other extension is decoded as YAML, which also covers JSON. Unknown keys
// are tolerated. Read failures are returned wrapped; content that does not
// parse yields a *MalformedSpecError.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes data as a specification document. The name selects the
// format by extension and is used in error messages.
func Parse(name string, data []byte) (*Spec, error) {
	if strings.EqualFold(filepath.Ext(name), ".cue") {
		jsonData, err := cueToJSON(name, data)
		if err != nil {
			return nil, &MalformedSpecError{Path: name, Err: err}
		}
		data = jsonData
	}

	var s Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty document: everything falls back to defaults.
			return &s, nil
		}
		return nil, &MalformedSpecError{Path: name, Err: err}
	}
	return &s, nil
}

// cueToJSON evaluates a CUE document and exports it as JSON.
func cueToJSON(name string, data []byte) ([]byte, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(name))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("building CUE value: %w", err)
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("CUE value is not concrete: %w", err)
	}
	out, err := value.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("exporting CUE value: %w", err)
	}
	return out, nil
}
