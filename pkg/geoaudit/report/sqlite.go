package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/geoaudit/pkg/geoaudit/finding"
	"github.com/cognicore/geoaudit/pkg/geoaudit/keywords"
)

const exportSchema = `
CREATE TABLE reports (
	id TEXT PRIMARY KEY,
	file TEXT NOT NULL,
	file_type TEXT,
	fingerprint TEXT,
	generated_at TEXT NOT NULL,
	overall INTEGER NOT NULL,
	grade TEXT,
	grade_label TEXT,
	partial INTEGER NOT NULL DEFAULT 0,
	applied_weight REAL,
	missing TEXT,
	title TEXT,
	description TEXT,
	word_count INTEGER
);

CREATE TABLE components (
	report_id TEXT NOT NULL,
	analyzer TEXT NOT NULL,
	score INTEGER NOT NULL,
	PRIMARY KEY(report_id, analyzer),
	FOREIGN KEY(report_id) REFERENCES reports(id) ON DELETE CASCADE
);

CREATE TABLE findings (
	report_id TEXT NOT NULL,
	analyzer TEXT NOT NULL,
	kind TEXT NOT NULL,
	severity TEXT NOT NULL,
	message TEXT NOT NULL,
	FOREIGN KEY(report_id) REFERENCES reports(id) ON DELETE CASCADE
);

CREATE TABLE keywords (
	report_id TEXT NOT NULL,
	keyword TEXT NOT NULL,
	kind TEXT NOT NULL,
	frequency INTEGER NOT NULL,
	word_count INTEGER NOT NULL,
	rank REAL NOT NULL,
	density REAL NOT NULL,
	FOREIGN KEY(report_id) REFERENCES reports(id) ON DELETE CASCADE
);
`

// ExportSQLite writes reports to a new database at path, replacing any
// file already there. The database is written once and closed.
func ExportSQLite(ctx context.Context, path string, reports ...*Report) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("replace %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, exportSchema); err != nil {
		return fmt.Errorf("create export schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range reports {
		if err := insertReport(ctx, tx, r); err != nil {
			return fmt.Errorf("export report %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

func insertReport(ctx context.Context, tx *sql.Tx, r *Report) error {
	missing, err := json.Marshal(r.Score.Missing)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
INSERT INTO reports (id, file, file_type, fingerprint, generated_at, overall, grade, grade_label,
	partial, applied_weight, missing, title, description, word_count)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.File, string(r.FileType), r.Fingerprint, r.GeneratedAt.UTC().Format(time.RFC3339),
		r.Score.Overall, r.Grade.Letter, r.Grade.Label,
		r.Score.Partial, r.Score.AppliedWeight, string(missing),
		r.Page.Title, r.Page.Description, r.Page.WordCount,
	)
	if err != nil {
		return err
	}

	if err := insertComponents(ctx, tx, r); err != nil {
		return err
	}
	if err := insertFindings(ctx, tx, r); err != nil {
		return err
	}
	return insertKeywords(ctx, tx, r)
}

func insertComponents(ctx context.Context, tx *sql.Tx, r *Report) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO components (report_id, analyzer, score) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for name, score := range r.Score.Components {
		if _, err := stmt.ExecContext(ctx, r.ID, name, score); err != nil {
			return err
		}
	}
	return nil
}

func insertFindings(ctx context.Context, tx *sql.Tx, r *Report) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO findings (report_id, analyzer, kind, severity, message) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	insert := func(analyzer, kind string, found []finding.Finding) error {
		for _, f := range found {
			if _, err := stmt.ExecContext(ctx, r.ID, analyzer, kind, f.Severity.String(), f.Message); err != nil {
				return err
			}
		}
		return nil
	}
	for name, res := range r.Results {
		if err := insert(name, "issue", res.Issues); err != nil {
			return err
		}
		if err := insert(name, "recommendation", res.Recommendations); err != nil {
			return err
		}
	}
	return nil
}

func insertKeywords(ctx context.Context, tx *sql.Tx, r *Report) error {
	a := r.Keywords()
	if a == nil {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO keywords (report_id, keyword, kind, frequency, word_count, rank, density) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, group := range [][]keywords.Keyword{a.Primary, a.Semantic, a.LongTail} {
		for _, k := range group {
			if _, err := stmt.ExecContext(ctx, r.ID, k.Text, string(k.Kind), k.Frequency, k.Length, k.Rank, a.Density(k)); err != nil {
				return err
			}
		}
	}
	return nil
}
