package repository

import (
	"context"
	"database/sql"
	"fmt"

	"standort-api/internal/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// createTableSQL creates the base table shape of the earliest application
// version. Later columns are added by EnsureSchema so that a database file
// written by an older version keeps its rows.
const createTableSQL = `
	CREATE TABLE IF NOT EXISTS locations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		bezirk TEXT,
		erstellungsdatum TEXT,
		x_coord REAL,
		y_coord REAL,
		sonstiges TEXT
	)
`

type columnDef struct {
	name     string
	sqlType  string
	defValue string
}

// expectedColumns lists every column later application versions added on top
// of the base table, in the order they appeared.
var expectedColumns = []columnDef{
	{"erstellungszeit", "TEXT", "''"},
	{"adresse", "TEXT", "''"},
	{"hausnummer", "TEXT", "''"},
	{"strasse", "TEXT", "''"},
	{"bezirk_spez", "TEXT", "''"},
	{"ort", "TEXT", "''"},
	{"bundesland", "TEXT", "''"},
	{"plz", "TEXT", "''"},
	{"land", "TEXT", "''"},
}

// Repository implements the repository interface for SQLite
type Repository struct {
	db *sql.DB
}

// Open creates or opens the SQLite database file at the given path and
// verifies the connection. An error here is fatal to the process.
func Open(path string) (*Repository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("repository: failed to connect to database: %w", err)
	}

	// SQLite supports a single writer; keep one connection to avoid
	// SQLITE_BUSY during concurrent submissions.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("repository: failed to execute %q: %w", pragma, err)
		}
	}

	return &Repository{db: db}, nil
}

// Close closes the underlying database file.
func (r *Repository) Close() error {
	return r.db.Close()
}

// EnsureSchema brings an existing table up to the current column set without
// destructive changes. It creates the base table if absent, inspects the live
// columns, and adds each missing expected column with its own ALTER TABLE.
// Safe to run any number of times. A failing additive statement is logged and
// skipped; only a failure to create the base table is returned.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("repository: failed to create locations table: %w", err)
	}

	live, err := r.liveColumns(ctx)
	if err != nil {
		// Leave the schema at its previous shape rather than failing startup.
		log.Warn().Err(err).Msg("could not inspect locations table structure, skipping column checks")
		return nil
	}

	for _, col := range expectedColumns {
		if live[col.name] {
			continue
		}
		stmt := fmt.Sprintf("ALTER TABLE locations ADD COLUMN %s %s DEFAULT %s", col.name, col.sqlType, col.defValue)
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			log.Warn().Err(err).Str("column", col.name).Msg("failed to add column")
			continue
		}
		log.Info().Str("column", col.name).Msg("added column to locations table")
	}

	return nil
}

// liveColumns returns the set of column names the locations table currently has.
func (r *Repository) liveColumns(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, "PRAGMA table_info(locations)")
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query table info: %w", err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var (
			cid      int
			name     string
			colType  string
			notNull  int
			defValue sql.NullString
			pk       int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defValue, &pk); err != nil {
			return nil, fmt.Errorf("repository: failed to scan table info: %w", err)
		}
		columns[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating table info: %w", err)
	}

	return columns, nil
}

// Insert persists a fully-assembled record as a single statement and returns
// the id the database assigned to it.
func (r *Repository) Insert(ctx context.Context, loc models.Location) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO locations (
			bezirk, erstellungsdatum, erstellungszeit, x_coord, y_coord, sonstiges,
			adresse, hausnummer, strasse, bezirk_spez, ort, bundesland, plz, land
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		loc.Bezirk, loc.Erstellungsdatum, loc.Erstellungszeit, loc.XCoord, loc.YCoord, loc.Sonstiges,
		loc.Adresse, loc.Hausnummer, loc.Strasse, loc.BezirkSpez, loc.Ort, loc.Bundesland, loc.PLZ, loc.Land,
	)
	if err != nil {
		return 0, fmt.Errorf("repository: failed to insert location: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("repository: failed to read inserted id: %w", err)
	}

	return id, nil
}

// selectColumns tolerates NULLs left behind by rows that predate a column.
const selectColumns = `
	id, bezirk, erstellungsdatum, COALESCE(erstellungszeit, ''), x_coord, y_coord,
	COALESCE(sonstiges, ''), COALESCE(adresse, ''), COALESCE(hausnummer, ''),
	COALESCE(strasse, ''), COALESCE(bezirk_spez, ''), COALESCE(ort, ''),
	COALESCE(bundesland, ''), COALESCE(plz, ''), COALESCE(land, '')
`

// Recent returns up to limit rows, most recently created first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]models.Location, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM locations ORDER BY id DESC LIMIT ?", limit)
}

// All returns every row in insertion order.
func (r *Repository) All(ctx context.Context) ([]models.Location, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM locations")
}

// AllNewestFirst returns every row ordered by id descending, for the admin listing.
func (r *Repository) AllNewestFirst(ctx context.Context) ([]models.Location, error) {
	return r.query(ctx, "SELECT "+selectColumns+" FROM locations ORDER BY id DESC")
}

func (r *Repository) query(ctx context.Context, sqlText string, args ...any) ([]models.Location, error) {
	rows, err := r.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute query: %w", err)
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		var loc models.Location
		err := rows.Scan(
			&loc.ID,
			&loc.Bezirk,
			&loc.Erstellungsdatum,
			&loc.Erstellungszeit,
			&loc.XCoord,
			&loc.YCoord,
			&loc.Sonstiges,
			&loc.Adresse,
			&loc.Hausnummer,
			&loc.Strasse,
			&loc.BezirkSpez,
			&loc.Ort,
			&loc.Bundesland,
			&loc.PLZ,
			&loc.Land,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return locations, nil
}

// DeleteByID removes at most one row. Deleting an id that does not exist is a no-op.
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM locations WHERE id = ?", id); err != nil {
		return fmt.Errorf("repository: failed to delete location %d: %w", id, err)
	}
	return nil
}

// DeleteAll removes every row.
func (r *Repository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM locations"); err != nil {
		return fmt.Errorf("repository: failed to delete locations: %w", err)
	}
	return nil
}
