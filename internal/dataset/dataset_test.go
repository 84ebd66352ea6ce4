package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *Dataset {
	d := New("date", "commodity", "value")
	d.Rows = [][]string{
		{"2026-10-19", "Lithium", "10000.0"},
		{"2026-10-18", "Cobalt", ""},
		{"2026-10-17", "Lithium", "NaN"},
	}
	return d
}

func TestAppendChecksWidth(t *testing.T) {
	d := New("a", "b")
	require.NoError(t, d.Append([]string{"1", "2"}))
	err := d.Append([]string{"1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row has 1 cells, header has 2 columns")
	assert.Equal(t, 1, d.Len())
}

func TestColumnAccess(t *testing.T) {
	d := sample()
	assert.Equal(t, 1, d.ColumnIndex("commodity"))
	assert.Equal(t, -1, d.ColumnIndex("metric"))

	cells, ok := d.Column("commodity")
	require.True(t, ok)
	assert.Equal(t, []string{"Lithium", "Cobalt", "Lithium"}, cells)

	_, ok = d.Column("metric")
	assert.False(t, ok)
}

func TestNullCount(t *testing.T) {
	d := sample()

	n, ok := d.NullCount("value")
	require.True(t, ok)
	assert.Equal(t, 2, n)

	n, ok = d.NullCount("date")
	require.True(t, ok)
	assert.Equal(t, 0, n)

	_, ok = d.NullCount("metric")
	assert.False(t, ok)
}

func TestIsNull(t *testing.T) {
	for _, cell := range []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL", "None", "<NA>", "#N/A", "n/a"} {
		assert.True(t, IsNull(cell), "%q should be null", cell)
	}
	for _, cell := range []string{"0", " ", "none", "Nil", "demo", "USD/t"} {
		assert.False(t, IsNull(cell), "%q should not be null", cell)
	}
}

func TestWriteRead(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample()))
	assert.Equal(t, "date,commodity,value\n"+
		"2026-10-19,Lithium,10000.0\n"+
		"2026-10-18,Cobalt,\n"+
		"2026-10-17,Lithium,NaN\n", buf.String())

	d, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, sample(), d)
}

func TestWriteQuotesFields(t *testing.T) {
	d := New("unit", "note")
	d.Rows = [][]string{{"USD/t", "a, b"}}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d))
	assert.Equal(t, "unit,note\nUSD/t,\"a, b\"\n", buf.String())
}

func TestReadHeaderOnly(t *testing.T) {
	d, err := Read(strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, d.Columns)
	assert.Equal(t, 0, d.Len())
}

func TestReadErrors(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.ErrorContains(t, err, "missing header line")

	_, err = Read(strings.NewReader("a,b\n1,2,3\n"))
	assert.ErrorContains(t, err, "read row 1")
	assert.ErrorContains(t, err, "line 2 has 3 fields, header has 2")
}

func TestReadPadsShortRows(t *testing.T) {
	d, err := Read(strings.NewReader("a,value\n1,2\n3\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"1", "2"}, {"3", ""}}, d.Rows)

	n, ok := d.NullCount("value")
	require.True(t, ok)
	assert.Equal(t, 1, n)
}

func TestWriteFileCreatesParentsAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "out.csv")

	require.NoError(t, WriteFile(path, sample()))

	d, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sample(), d)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary files may remain")
	assert.Equal(t, "out.csv", entries[0].Name())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("old,content\n1,2\n"), 0o644))

	require.NoError(t, WriteFile(path, sample()))

	d, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"date", "commodity", "value"}, d.Columns)
}

func TestWriteFileMkdirFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := WriteFile(filepath.Join(blocker, "out.csv"), sample())
	require.Error(t, err)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "mkdir", ioErr.Op)
}

func TestWriteFileRenameFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	// A directory at the destination makes the final rename fail.
	target := filepath.Join(dir, "out.csv")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), nil, 0o644))

	err := WriteFile(target, sample())
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "rename", ioErr.Op)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file must be removed")
	assert.Equal(t, "out.csv", entries[0].Name())
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "read", ioErr.Op)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
