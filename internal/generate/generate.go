package generate

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/commodex/internal/canonical"
	"github.com/roach88/commodex/internal/dataset"
	"github.com/roach88/commodex/internal/spec"
)

// DefaultRows is the number of rows generated when none is configured.
const DefaultRows = 100

// Generator builds and writes datasets.
type Generator struct {
	// Rows is the number of data rows; zero means DefaultRows.
	Rows int

	// Now supplies the run timestamp; nil means time.Now.
	Now func() time.Time

	// Logger receives progress messages; nil means slog.Default().
	Logger *slog.Logger
}

// Summary describes a completed generation.
type Summary struct {
	Path        string    `json:"path"`
	Rows        int       `json:"rows"`
	Columns     []string  `json:"columns"`
	RetrievedAt time.Time `json:"retrieved_at"`

	// DatasetHash fingerprints the CSV bytes written to Path.
	DatasetHash string `json:"dataset_hash"`
}

// Fingerprint hashes the CSV encoding of d.
func Fingerprint(d *dataset.Dataset) (string, error) {
	var buf bytes.Buffer
	if err := dataset.Write(&buf, d); err != nil {
		return "", err
	}
	return canonical.HashBytes(canonical.DomainDataset, buf.Bytes()), nil
}

func (g *Generator) rows() int {
	if g.Rows == 0 {
		return DefaultRows
	}
	return g.Rows
}

func (g *Generator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// Columns resolves the column order for a dataset written to dest: the
// schema of the output declared for dest (or the first output), else
// CanonicalColumns.
func Columns(s *spec.Spec, dest string) ([]string, error) {
	out, ok := s.OutputFor(dest)
	if !ok || len(out.Schema.Columns) == 0 {
		return CanonicalColumns, nil
	}

	columns := out.ColumnNames()
	for _, name := range columns {
		if !knownColumn(name) {
			return nil, &UnknownColumnError{Column: name, Output: out.Path}
		}
	}
	return columns, nil
}

// Build generates the dataset for s with the given column order.
func (g *Generator) Build(s *spec.Spec, columns []string) (*dataset.Dataset, time.Time, error) {
	n := g.rows()
	if n < 1 {
		return nil, time.Time{}, fmt.Errorf("row count must be at least 1, got %d", n)
	}

	now := g.now().UTC()
	d := dataset.New(columns...)
	for _, rec := range Records(s, n, now) {
		row := make([]string, len(columns))
		for j, name := range columns {
			cell, ok := rec.Field(name)
			if !ok {
				return nil, time.Time{}, &UnknownColumnError{Column: name}
			}
			row[j] = cell
		}
		if err := d.Append(row); err != nil {
			return nil, time.Time{}, err
		}
	}
	return d, now, nil
}

// Generate builds the dataset for s and writes it to dest, replacing any
// existing file atomically.
func (g *Generator) Generate(s *spec.Spec, dest string) (*Summary, error) {
	columns, err := Columns(s, dest)
	if err != nil {
		return nil, err
	}

	d, now, err := g.Build(s, columns)
	if err != nil {
		return nil, err
	}

	if err := dataset.WriteFile(dest, d); err != nil {
		return nil, fmt.Errorf("write dataset: %w", err)
	}
	fingerprint, err := Fingerprint(d)
	if err != nil {
		return nil, fmt.Errorf("fingerprint dataset: %w", err)
	}

	g.logger().Debug("dataset written",
		"path", dest,
		"rows", d.Len(),
		"columns", len(columns),
		"commodities", len(s.CommodityList()),
		"metrics", len(s.MetricList()),
		"dataset_hash", fingerprint)

	return &Summary{
		Path:        dest,
		Rows:        d.Len(),
		Columns:     columns,
		RetrievedAt: now,
		DatasetHash: fingerprint,
	}, nil
}
