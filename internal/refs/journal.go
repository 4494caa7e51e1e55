package refs

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/edbaunton/copybara/internal/db"
	"github.com/jmoiron/sqlx"
)

const journalSchema = `
CREATE TABLE IF NOT EXISTS ref_journal (
	migration TEXT NOT NULL,
	name TEXT NOT NULL,
	hash TEXT NOT NULL,
	PRIMARY KEY (migration, name)
);

CREATE TABLE IF NOT EXISTS ref_journal_meta (
	migration TEXT PRIMARY KEY,
	recorded_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ref_journal_migration ON ref_journal(migration);
`

type journalRow struct {
	Migration string `db:"migration"`
	Name      string `db:"name"`
	Hash      string `db:"hash"`
}

// Journal persists the last recorded snapshot per migration, so a new
// fetch can be classified against the previous one.
type Journal struct {
	db *sqlx.DB
}

// OpenJournal creates or opens the snapshot journal at dbPath.
func OpenJournal(dbPath string) (*Journal, error) {
	conn, err := db.NewSqliteDB(db.WithPath(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open ref journal: %w", err)
	}

	if _, err := conn.Exec(journalSchema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initialize ref journal schema: %w", err)
	}

	return &Journal{db: conn}, nil
}

// Close releases the underlying database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Snapshot returns the last recorded snapshot for a migration. A
// migration that was never recorded yields an empty snapshot.
func (j *Journal) Snapshot(migration string) (Snapshot, error) {
	var rows []journalRow
	err := j.db.Select(&rows, "SELECT migration, name, hash FROM ref_journal WHERE migration = ?", migration)
	if err != nil {
		return nil, fmt.Errorf("query journal for %s: %w", migration, err)
	}

	snap := make(Snapshot, len(rows))
	for _, row := range rows {
		snap[row.Name] = New(row.Name, row.Hash)
	}
	return snap, nil
}

// Record replaces the stored snapshot for a migration.
func (j *Journal) Record(migration string, snap Snapshot) error {
	tx, err := j.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin journal tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM ref_journal WHERE migration = ?", migration); err != nil {
		return fmt.Errorf("clear journal for %s: %w", migration, err)
	}

	for name, ref := range snap {
		_, err := tx.Exec(
			"INSERT INTO ref_journal (migration, name, hash) VALUES (?, ?, ?)",
			migration, name, ref.Hash,
		)
		if err != nil {
			return fmt.Errorf("record ref %s: %w", name, err)
		}
	}

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO ref_journal_meta (migration, recorded_at) VALUES (?, ?)",
		migration, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record journal meta for %s: %w", migration, err)
	}

	return tx.Commit()
}

// LastRecorded returns when a migration's snapshot was last written.
// ok is false if the migration was never recorded.
func (j *Journal) LastRecorded(migration string) (t time.Time, ok bool, err error) {
	var stamp string
	err = j.db.Get(&stamp, "SELECT recorded_at FROM ref_journal_meta WHERE migration = ?", migration)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("query journal meta for %s: %w", migration, err)
	}

	t, err = time.Parse(time.RFC3339, stamp)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse journal timestamp %q: %w", stamp, err)
	}
	return t, true, nil
}

// DiffSince classifies the current snapshot against the last recorded
// one without recording it.
func (j *Journal) DiffSince(migration string, current Snapshot) (*Diff, error) {
	previous, err := j.Snapshot(migration)
	if err != nil {
		return nil, err
	}
	return NewDiff(previous, current), nil
}
