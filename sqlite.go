package yoloconv

// SQLite output of tables.

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// WriteSQLite writes every table to the SQLite database at path, creating the database if
// needed. Existing tables with the same names are replaced.
func WriteSQLite(path string, tables ...Table) (err error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return fmt.Errorf("failed to open database %q: %w", path, err)
	}
	defer closeWithErrCheck(db, &err)
	db.SetMaxOpenConns(1)

	for _, t := range tables {
		if err := writeSQLiteTable(db, t); err != nil {
			return fmt.Errorf("failed to write table %s to %q: %w", t.Name, path, err)
		}
		log.Printf("Wrote %d rows to table %s in %s", len(t.Rows), t.Name, path)
	}

	return nil
}

// writeSQLiteTable replaces the table t in db within a single transaction.
func writeSQLiteTable(db *sql.DB, t Table) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	columns := make([]string, len(t.Columns))
	placeholders := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = fmt.Sprintf("%s %s NOT NULL", quoteIdent(c.Name), sqliteType(c.Kind))
		placeholders[i] = "?"
	}

	schema := fmt.Sprintf("DROP TABLE IF EXISTS %[1]s; CREATE TABLE %[1]s (%s);",
		quoteIdent(t.Name), strings.Join(columns, ", "))
	if _, err := tx.Exec(schema); err != nil {
		return err
	}

	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(t.Name),
		strings.Join(placeholders, ", ")))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range t.Rows {
		if _, err := stmt.Exec(row...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func sqliteType(kind ColumnKind) string {
	switch kind {
	case Integer:
		return "INTEGER"
	case Real:
		return "REAL"
	}
	return "TEXT"
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
