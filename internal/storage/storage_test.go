package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/fencing-results/internal/event"
	"github.com/pfrederiksen/fencing-results/internal/result"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testEvent(t *testing.T) event.Event {
	t.Helper()
	evt, err := event.New(412, 0, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return evt
}

func sampleResults() []result.Result {
	return []result.Result{
		result.New("1", "SMITH", "John", "Fencing  Club", "GBR"),
		result.New("2", "O'NEIL", "Sean", "Salle Dublin", "IRL"),
		result.New("3T", "DUPONT", "Jean-Luc", "", "FRA"),
		result.New("Abandon", "BROWN", "Tom", "Leon Paul", "GBR"),
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	dir, err := os.MkdirTemp("", "fencing-results-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "nested", "results.db")
	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)

	// Reopening applies the schema again without error.
	s, err = Open(context.Background(), path)
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}

func TestRecaseSurname(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"SMITH", "Smith"},
		{"O'NEIL", "O'Neil"},
		{"SMITH-JONES", "Smith-Jones"},
		{"VAN DER BERG", "Van Der Berg"},
		{"MÜLLER", "Müller"},
		{"Smith", "Smith"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, RecaseSurname(tt.in))
		})
	}
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	smith, err := s.AddFencer(ctx, "John", "Smith")
	require.NoError(t, err)
	_, err = s.AddFencer(ctx, "Sean", "O'Neil")
	require.NoError(t, err)
	clubID, err := s.AddClubAlias(ctx, "Fencing Club", "Fencing Club")
	require.NoError(t, err)

	b := NewBatch("engarde", testEvent(t), 26, false)
	require.NotEmpty(t, b.ID)

	sum, err := s.Import(ctx, b, sampleResults())
	require.NoError(t, err)
	assert.Equal(t, b.ID, sum.BatchID)
	assert.Equal(t, 4, sum.Inserted)
	assert.Equal(t, int64(2), sum.LinkedFencers)
	assert.Equal(t, int64(1), sum.LinkedClubs)

	entries, err := s.Entries(ctx, sum.DateID, 412, 26)
	require.NoError(t, err)
	assert.Equal(t, 4, entries)

	unlinked, err := s.Unlinked(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, unlinked, 3)
	assert.Equal(t, "O'Neil", unlinked[0].Surname)
	assert.True(t, unlinked[0].FencerID.Valid)
	assert.False(t, unlinked[0].ClubID.Valid)
	// Empty club falls back to the country.
	assert.Equal(t, "FRA", unlinked[1].Club)
	assert.Equal(t, result.SentinelRank, unlinked[2].Position)
	assert.Equal(t, 1, unlinked[2].Points)

	promoted, err := s.Promote(ctx, b.ID, sum.DateID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), promoted)

	var fencerID, gotClub, points int64
	err = s.db.QueryRowContext(ctx,
		`SELECT fencer_id, club_id, points FROM results WHERE position = 1`).Scan(&fencerID, &gotClub, &points)
	require.NoError(t, err)
	assert.Equal(t, smith, fencerID)
	assert.Equal(t, clubID, gotClub)
	assert.Equal(t, int64(result.PointsFor(1)), points)

	again, err := s.Promote(ctx, b.ID, sum.DateID)
	require.NoError(t, err)
	assert.Zero(t, again)
}

func TestImportClearsHolding(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	evt := testEvent(t)

	first := NewBatch("engarde", evt, 26, false)
	_, err := s.Import(ctx, first, sampleResults())
	require.NoError(t, err)

	second := NewBatch("engarde", evt, 27, false)
	sum, err := s.Import(ctx, second, sampleResults()[:1])
	require.NoError(t, err)

	var n int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM holding`).Scan(&n))
	assert.Equal(t, 1, n)

	// Both categories share the event date row.
	var dates int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_dates`).Scan(&dates))
	assert.Equal(t, 1, dates)

	entries, err := s.Entries(ctx, sum.DateID, evt.ID, 26)
	require.NoError(t, err)
	assert.Equal(t, 4, entries)
}

func TestImportRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	evt := testEvent(t)

	first := NewBatch("engarde", evt, 26, false)
	_, err := s.Import(ctx, first, sampleResults())
	require.NoError(t, err)

	_, err = s.db.ExecContext(ctx, `CREATE TRIGGER reject_insert BEFORE INSERT ON holding
		WHEN NEW.surname = 'Jones'
		BEGIN SELECT RAISE(ABORT, 'rejected'); END`)
	require.NoError(t, err)

	later, err := event.New(412, 0, time.Date(2024, 4, 13, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	second := NewBatch("engarde", later, 27, false)
	results := []result.Result{
		result.New("1", "SMITH", "John", "Fencing Club", "GBR"),
		result.New("2", "JONES", "Anna", "Truro", "GBR"),
	}
	_, err = s.Import(ctx, second, results)
	require.Error(t, err)

	// The earlier batch is still in holding and nothing of the failed one
	// was written.
	var n int
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM holding WHERE batch_id = ?`, first.ID).Scan(&n))
	assert.Equal(t, 4, n)
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM holding WHERE batch_id = ?`, second.ID).Scan(&n))
	assert.Zero(t, n)

	var dates, entries int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM event_dates`).Scan(&dates))
	assert.Equal(t, 1, dates)
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM event_entries WHERE category_id = 27`).Scan(&entries))
	assert.Zero(t, entries)
}

func TestOverrideClub(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	b := NewBatch("fie", testEvent(t), 3, true)
	_, err := s.InsertResults(ctx, b, sampleResults()[:1])
	require.NoError(t, err)

	var club string
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT club FROM holding`).Scan(&club))
	assert.Equal(t, "GBR", club)
}

func TestSetEntriesReplaces(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	dateID, err := s.UpsertEventDate(ctx, testEvent(t))
	require.NoError(t, err)
	again, err := s.UpsertEventDate(ctx, testEvent(t))
	require.NoError(t, err)
	assert.Equal(t, dateID, again)

	require.NoError(t, s.SetEntries(ctx, dateID, 412, 26, 10))
	require.NoError(t, s.SetEntries(ctx, dateID, 412, 26, 12))

	n, err := s.Entries(ctx, dateID, 412, 26)
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	n, err = s.Entries(ctx, dateID, 412, 99)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAddClubAliasReusesClub(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	a, err := s.AddClubAlias(ctx, "Leon Paul", "Leon Paul")
	require.NoError(t, err)
	b, err := s.AddClubAlias(ctx, "Leon Paul", "LEON PAUL FC")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
