package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	_ "modernc.org/sqlite"

	"github.com/pfrederiksen/fencing-results/internal/event"
	"github.com/pfrederiksen/fencing-results/internal/result"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

const dateLayout = "2006-01-02"

// Store is a results database
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema. The parent directory is created for file databases.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Every connection to :memory: is a separate database, and SQLite
	// serialises writers anyway.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// querier is the part of *sql.DB and *sql.Tx the import steps need.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// inTx runs fn in one transaction, committing only when fn succeeds.
func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Batch describes one import run: one category of one dated event.
type Batch struct {
	ID       string
	Source   string
	Event    event.Event
	Category int
	// OverrideClub records the country instead of the club, for
	// international events where clubs are not tracked.
	OverrideClub bool
}

// NewBatch creates a Batch with a fresh id.
func NewBatch(source string, evt event.Event, category int, overrideClub bool) Batch {
	return Batch{
		ID:           uuid.NewString(),
		Source:       source,
		Event:        evt,
		Category:     category,
		OverrideClub: overrideClub,
	}
}

// Summary reports what an import did.
type Summary struct {
	BatchID       string `json:"batch_id"`
	DateID        int64  `json:"date_id"`
	Inserted      int    `json:"inserted"`
	LinkedFencers int64  `json:"linked_fencers"`
	LinkedClubs   int64  `json:"linked_clubs"`
	Promoted      int64  `json:"promoted"`
}

// Import runs the whole holding-table workflow for one batch in a single
// transaction: record the event date, clear holding, insert, count entries,
// then link fencers and clubs. Any failure leaves the database as it was.
// Promotion is left to the caller.
func (s *Store) Import(ctx context.Context, b Batch, results []result.Result) (Summary, error) {
	var sum Summary
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		sum, err = importBatch(ctx, tx, b, results)
		return err
	})
	if err != nil {
		return Summary{BatchID: b.ID}, err
	}
	return sum, nil
}

func importBatch(ctx context.Context, q querier, b Batch, results []result.Result) (Summary, error) {
	sum := Summary{BatchID: b.ID}

	dateID, err := upsertEventDate(ctx, q, b.Event)
	if err != nil {
		return sum, err
	}
	sum.DateID = dateID

	if err := clearHolding(ctx, q); err != nil {
		return sum, err
	}
	if sum.Inserted, err = insertResults(ctx, q, b, results); err != nil {
		return sum, err
	}
	if err := setEntries(ctx, q, dateID, b.Event.ID, b.Category, sum.Inserted); err != nil {
		return sum, err
	}
	if sum.LinkedFencers, err = linkFencers(ctx, q, b.ID); err != nil {
		return sum, err
	}
	if sum.LinkedClubs, err = linkClubs(ctx, q, b.ID); err != nil {
		return sum, err
	}
	return sum, nil
}

// InsertResults writes one holding row per result and returns the count.
func (s *Store) InsertResults(ctx context.Context, b Batch, results []result.Result) (int, error) {
	var n int
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		n, err = insertResults(ctx, tx, b, results)
		return err
	})
	return n, err
}

func insertResults(ctx context.Context, q querier, b Batch, results []result.Result) (int, error) {
	stmt, err := q.PrepareContext(ctx, `INSERT INTO holding
		(batch_id, source, event_id, event_year, category_id, forename, surname, club, position, points, birth_year, imported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close() // nolint:errcheck

	now := time.Now().UTC().Format(time.RFC3339)
	for _, r := range results {
		_, err := stmt.ExecContext(ctx,
			b.ID, b.Source, b.Event.ID, b.Event.Year, b.Category,
			r.Forename, RecaseSurname(r.Surname), holdingClub(r, b.OverrideClub),
			r.Rank, r.Points, r.BirthYear, now)
		if err != nil {
			return 0, fmt.Errorf("inserting result for %s: %w", r.FullName(), err)
		}
	}
	return len(results), nil
}

// LinkFencers sets fencer_id on the batch's holding rows whose forename and
// surname exactly match a known fencer.
func (s *Store) LinkFencers(ctx context.Context, batchID string) (int64, error) {
	return linkFencers(ctx, s.db, batchID)
}

func linkFencers(ctx context.Context, q querier, batchID string) (int64, error) {
	_, err := q.ExecContext(ctx, `UPDATE holding SET fencer_id = (
			SELECT fencers.id FROM fencers
			WHERE fencers.forename = holding.forename AND fencers.surname = holding.surname
			LIMIT 1)
		WHERE batch_id = ?`, batchID)
	if err != nil {
		return 0, fmt.Errorf("linking fencers: %w", err)
	}
	return countLinked(ctx, q, batchID, "fencer_id")
}

// LinkClubs sets club_id on the batch's holding rows whose club text is a
// known alias.
func (s *Store) LinkClubs(ctx context.Context, batchID string) (int64, error) {
	return linkClubs(ctx, s.db, batchID)
}

func linkClubs(ctx context.Context, q querier, batchID string) (int64, error) {
	_, err := q.ExecContext(ctx, `UPDATE holding SET club_id = (
			SELECT club_aliases.club_id FROM club_aliases
			WHERE club_aliases.alias = holding.club
			LIMIT 1)
		WHERE batch_id = ?`, batchID)
	if err != nil {
		return 0, fmt.Errorf("linking clubs: %w", err)
	}
	return countLinked(ctx, q, batchID, "club_id")
}

func countLinked(ctx context.Context, q querier, batchID, column string) (int64, error) {
	var n int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM holding WHERE batch_id = ? AND %s IS NOT NULL`, column)
	if err := q.QueryRowContext(ctx, query, batchID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting linked rows: %w", err)
	}
	return n, nil
}

// ClearHolding empties the holding table.
func (s *Store) ClearHolding(ctx context.Context) error {
	return clearHolding(ctx, s.db)
}

func clearHolding(ctx context.Context, q querier) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM holding`); err != nil {
		return fmt.Errorf("clearing holding table: %w", err)
	}
	return nil
}

// UpsertEventDate makes sure the event has a row for its date and returns
// that row's id.
func (s *Store) UpsertEventDate(ctx context.Context, evt event.Event) (int64, error) {
	return upsertEventDate(ctx, s.db, evt)
}

func upsertEventDate(ctx context.Context, q querier, evt event.Event) (int64, error) {
	date := evt.Date.Format(dateLayout)

	_, err := q.ExecContext(ctx,
		`INSERT OR IGNORE INTO event_dates (event_id, year, full_date) VALUES (?, ?, ?)`,
		evt.ID, evt.Year, date)
	if err != nil {
		return 0, fmt.Errorf("recording event date: %w", err)
	}

	var id int64
	err = q.QueryRowContext(ctx,
		`SELECT id FROM event_dates WHERE event_id = ? AND full_date = ?`, evt.ID, date).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("reading event date: %w", err)
	}
	return id, nil
}

// SetEntries records how many competitors a category had.
func (s *Store) SetEntries(ctx context.Context, dateID int64, eventID, categoryID, entries int) error {
	return setEntries(ctx, s.db, dateID, eventID, categoryID, entries)
}

func setEntries(ctx context.Context, q querier, dateID int64, eventID, categoryID, entries int) error {
	_, err := q.ExecContext(ctx, `INSERT INTO event_entries (date_id, event_id, category_id, entries)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (date_id, event_id, category_id) DO UPDATE SET entries = excluded.entries`,
		dateID, eventID, categoryID, entries)
	if err != nil {
		return fmt.Errorf("recording entries: %w", err)
	}
	return nil
}

// Entries returns the recorded entry count for a category, or 0.
func (s *Store) Entries(ctx context.Context, dateID int64, eventID, categoryID int) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT entries FROM event_entries WHERE date_id = ? AND event_id = ? AND category_id = ?`,
		dateID, eventID, categoryID).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading entries: %w", err)
	}
	return n, nil
}

// Promote copies the batch's linked holding rows into results. Rows without
// a fencer stay in holding. Re-promoting a batch is a no-op.
func (s *Store) Promote(ctx context.Context, batchID string, dateID int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO results
			(event_id, date_id, category_id, fencer_id, club_id, position, points)
		SELECT event_id, ?, category_id, fencer_id, club_id, position, points
		FROM holding
		WHERE batch_id = ? AND fencer_id IS NOT NULL`, dateID, batchID)
	if err != nil {
		return 0, fmt.Errorf("promoting results: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("promoting results: %w", err)
	}
	return n, nil
}

// HoldingRow is one imported result awaiting linking or promotion.
type HoldingRow struct {
	ID       int64
	Forename string
	Surname  string
	Club     string
	Position int
	Points   int
	FencerID sql.NullInt64
	ClubID   sql.NullInt64
}

// Unlinked lists the batch's rows missing a fencer or a club, in finishing
// order.
func (s *Store) Unlinked(ctx context.Context, batchID string) ([]HoldingRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, forename, surname, club, position, points, fencer_id, club_id
		FROM holding
		WHERE batch_id = ? AND (fencer_id IS NULL OR club_id IS NULL)
		ORDER BY position, surname, forename`, batchID)
	if err != nil {
		return nil, fmt.Errorf("listing unlinked rows: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	out := make([]HoldingRow, 0)
	for rows.Next() {
		var h HoldingRow
		if err := rows.Scan(&h.ID, &h.Forename, &h.Surname, &h.Club, &h.Position, &h.Points, &h.FencerID, &h.ClubID); err != nil {
			return nil, fmt.Errorf("reading unlinked row: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// AddFencer registers a fencer and returns its id. An existing fencer with
// the same name is returned unchanged.
func (s *Store) AddFencer(ctx context.Context, forename, surname string) (int64, error) {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO fencers (forename, surname) VALUES (?, ?)`, forename, surname); err != nil {
		return 0, fmt.Errorf("adding fencer: %w", err)
	}
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM fencers WHERE forename = ? AND surname = ?`, forename, surname).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("reading fencer: %w", err)
	}
	return id, nil
}

// AddClubAlias registers alias as a spelling of club, creating the club if
// needed, and returns the club id.
func (s *Store) AddClubAlias(ctx context.Context, club, alias string) (int64, error) {
	var id int64
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO clubs (name) VALUES (?)`, club); err != nil {
			return fmt.Errorf("adding club: %w", err)
		}
		if err := tx.QueryRowContext(ctx, `SELECT id FROM clubs WHERE name = ?`, club).Scan(&id); err != nil {
			return fmt.Errorf("reading club: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO club_aliases (alias, club_id) VALUES (?, ?)`, alias, id); err != nil {
			return fmt.Errorf("adding club alias: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// RecaseSurname turns an upper-case surname into capitalised words, with a
// capital after every space, hyphen and apostrophe: "O'NEIL-SMITH" becomes
// "O'Neil-Smith".
func RecaseSurname(s string) string {
	title := cases.Title(language.Und)

	var b strings.Builder
	start := 0
	for i, r := range s {
		if r == ' ' || r == '-' || r == '\'' {
			b.WriteString(title.String(s[start:i]))
			b.WriteRune(r)
			start = i + 1
		}
	}
	b.WriteString(title.String(s[start:]))
	return b.String()
}

// holdingClub is the club text recorded for r: the club with whitespace
// collapsed, or the country when there is no club or clubs are overridden.
func holdingClub(r result.Result, overrideClub bool) string {
	club := strings.Join(strings.Fields(r.Club), " ")
	if club == "" || overrideClub {
		return strings.TrimSpace(r.Country)
	}
	return club
}
