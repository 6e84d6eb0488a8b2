package history

import (
	"fmt"

	"github.com/sihoon-0077/lotto-pattern2242289/internal/database"
)

// SQLiteProvider stores the archive in a local sqlite database. It is
// the highest-priority tier when DATABASE_PATH is configured.
type SQLiteProvider struct {
	db *database.DB
}

// NewSQLiteProvider creates the draws table if needed.
func NewSQLiteProvider(db *database.DB) (*SQLiteProvider, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS draws (
			round INTEGER PRIMARY KEY,
			n1 INTEGER NOT NULL,
			n2 INTEGER NOT NULL,
			n3 INTEGER NOT NULL,
			n4 INTEGER NOT NULL,
			n5 INTEGER NOT NULL,
			n6 INTEGER NOT NULL
		)`)
	if err != nil {
		return nil, fmt.Errorf("create draws table: %w", err)
	}
	return &SQLiteProvider{db: db}, nil
}

// Name returns the tier name
func (p *SQLiteProvider) Name() string { return "sqlite" }

// Writable reports whether this tier accepts writes
func (p *SQLiteProvider) Writable() bool { return true }

// Read loads all draws. An empty table reads as unavailable so that a
// freshly created database does not shadow the bundled archive.
func (p *SQLiteProvider) Read() (Archive, error) {
	rows, err := p.db.Query(`SELECT round, n1, n2, n3, n4, n5, n6 FROM draws`)
	if err != nil {
		return nil, fmt.Errorf("query draws: %w", err)
	}
	defer rows.Close()

	archive := Archive{}
	for rows.Next() {
		rec := DrawRecord{Numbers: make([]int, DrawSize)}
		if err := rows.Scan(&rec.Round,
			&rec.Numbers[0], &rec.Numbers[1], &rec.Numbers[2],
			&rec.Numbers[3], &rec.Numbers[4], &rec.Numbers[5]); err != nil {
			return nil, fmt.Errorf("scan draw: %w", err)
		}
		archive[rec.Round] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate draws: %w", err)
	}
	if len(archive) == 0 {
		return nil, fmt.Errorf("draws table is empty")
	}
	return archive, nil
}

// Write inserts missing rounds in one transaction. Stored records are
// immutable, so existing rounds are left untouched.
func (p *SQLiteProvider) Write(archive Archive) error {
	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO draws (round, n1, n2, n3, n4, n5, n6)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(round) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range archive {
		if len(rec.Numbers) != DrawSize {
			continue
		}
		if _, err := stmt.Exec(rec.Round,
			rec.Numbers[0], rec.Numbers[1], rec.Numbers[2],
			rec.Numbers[3], rec.Numbers[4], rec.Numbers[5]); err != nil {
			return fmt.Errorf("insert round %d: %w", rec.Round, err)
		}
	}
	return tx.Commit()
}
