package ledger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/commodex/internal/testutil"
)

// createTestLedger opens a ledger in a temp dir with deterministic IDs and
// timestamps.
func createTestLedger(t *testing.T) *Ledger {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.db")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { l.Close() })

	clock := testutil.NewStepClock(time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC), time.Minute)
	l.Now = clock.Now
	n := 0
	l.NewID = func() string {
		n++
		return fmt.Sprintf("run-%03d", n)
	}
	return l
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer l.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	for i := 0; i < 3; i++ {
		l, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		l.Close()
	}
}

func TestOpen_Pragmas(t *testing.T) {
	l := createTestLedger(t)

	var mode string
	require.NoError(t, l.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var version int
	require.NoError(t, l.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestOpen_RejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	l, err := Open(path)
	require.NoError(t, err)
	_, err = l.db.Exec("PRAGMA user_version = 99")
	require.NoError(t, err)
	l.Close()

	_, err = Open(path)
	assert.ErrorContains(t, err, "newer than supported")
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "dir", "ledger.db"))
	assert.Error(t, err)
}

func TestRecordAndList(t *testing.T) {
	ctx := context.Background()
	l := createTestLedger(t)

	gen, err := l.Record(ctx, Run{
		Kind:         KindGenerate,
		SpecPath:     "specs/example.yaml",
		ContractHash: "abc",
		DatasetPath:  "data/demo.csv",
		Rows:         100,
		Passed:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, "run-001", gen.ID)
	assert.Equal(t, int64(1), gen.Seq)
	assert.Equal(t, time.Date(2026, 3, 1, 8, 30, 0, 0, time.UTC), gen.RecordedAt)

	val, err := l.Record(ctx, Run{
		Kind:        KindValidate,
		SpecPath:    "specs/example.yaml",
		DatasetPath: "data/demo.csv",
		Rows:        100,
		Passed:      false,
		Violations:  []string{"E304: row count 100 < min_rows 200"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), val.Seq)

	runs, err := l.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, gen.ID, runs[0].ID)
	assert.Equal(t, KindGenerate, runs[0].Kind)
	assert.True(t, runs[0].Passed)
	assert.Nil(t, runs[0].Violations)
	assert.Equal(t, "abc", runs[0].ContractHash)
	assert.True(t, gen.RecordedAt.Equal(runs[0].RecordedAt))

	assert.Equal(t, KindValidate, runs[1].Kind)
	assert.False(t, runs[1].Passed)
	assert.Equal(t, []string{"E304: row count 100 < min_rows 200"}, runs[1].Violations)
	assert.Equal(t, 100, runs[1].Rows)
}

func TestRecordKeepsExplicitID(t *testing.T) {
	l := createTestLedger(t)
	run, err := l.Record(context.Background(), Run{ID: "fixed", Kind: KindGenerate, Passed: true})
	require.NoError(t, err)
	assert.Equal(t, "fixed", run.ID)

	_, err = l.Record(context.Background(), Run{ID: "fixed", Kind: KindGenerate, Passed: true})
	assert.Error(t, err, "ids are unique")
}

func TestRecordRejectsInvalidKind(t *testing.T) {
	l := createTestLedger(t)
	_, err := l.Record(context.Background(), Run{Kind: "compile"})
	assert.ErrorContains(t, err, `invalid kind "compile"`)
}

func TestListFilterAndLimit(t *testing.T) {
	ctx := context.Background()
	l := createTestLedger(t)

	for i := 0; i < 5; i++ {
		kind := KindGenerate
		if i%2 == 1 {
			kind = KindValidate
		}
		_, err := l.Record(ctx, Run{Kind: kind, Rows: i, Passed: true})
		require.NoError(t, err)
	}

	runs, err := l.List(ctx, ListOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, []int64{4, 5}, []int64{runs[0].Seq, runs[1].Seq}, "most recent, ascending")

	runs, err = l.List(ctx, ListOptions{Kind: KindValidate})
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 1, runs[0].Rows)
	assert.Equal(t, 3, runs[1].Rows)
}

func TestListEmpty(t *testing.T) {
	runs, err := createTestLedger(t).List(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestDefaultIDsAreUUIDv7(t *testing.T) {
	l, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	defer l.Close()

	run, err := l.Record(context.Background(), Run{Kind: KindGenerate, Passed: true})
	require.NoError(t, err)
	assert.Len(t, run.ID, 36)
	assert.Equal(t, byte('7'), run.ID[14], "version nibble")
}
