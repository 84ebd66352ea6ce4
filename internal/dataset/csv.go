package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Write encodes d as CSV with a header line.
func Write(w io.Writer, d *Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(d.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range d.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read decodes CSV with a header line. A file with no header at all is an
// error; a header with no rows is an empty dataset. Rows shorter than the
// header are padded with empty cells, which count as nulls; longer rows are
// an error.
func Read(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("missing header line")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	d := New(header...)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", d.Len()+1, err)
		}
		if len(row) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("read row %d: line %d has %d fields, header has %d", d.Len()+1, line, len(row), len(header))
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		if err := d.Append(row); err != nil {
			return nil, fmt.Errorf("read row %d: %w", d.Len()+1, err)
		}
	}
	return d, nil
}

// ReadFile loads the CSV file at path.
func ReadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	d, err := Read(f)
	if err != nil {
		return nil, &IOError{Op: "parse", Path: path, Err: err}
	}
	return d, nil
}

// WriteFile writes d to path, creating missing parent directories.
//
// The data is written to a temporary file in the destination directory and
// renamed into place, so a reader never observes a partially written file.
// The temporary file is removed on every failure path.
func WriteFile(path string, d *Dataset) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &IOError{Op: "mkdir", Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if err := Write(tmp, d); err != nil {
		return &IOError{Op: "write", Path: tmpName, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return &IOError{Op: "write", Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &IOError{Op: "write", Path: tmpName, Err: err}
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return &IOError{Op: "write", Path: tmpName, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return &IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
