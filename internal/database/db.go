package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jgoulah/loadshape/pkg/models"
	_ "modernc.org/sqlite"
)

const (
	dateFormat = "2006-01-02"
	timeFormat = "2006-01-02 15:04:05"
)

// DB wraps the database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// initSchema creates the necessary tables
func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS readings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ts TEXT NOT NULL,
		demand_mw REAL NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE(ts)
	);
	CREATE TABLE IF NOT EXISTS temperatures (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		temp_f REAL NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE(date)
	);
	CREATE TABLE IF NOT EXISTS hourly_records (
		date TEXT NOT NULL,
		hour INTEGER NOT NULL,
		mean_mw REAL NOT NULL,
		samples INTEGER NOT NULL,
		UNIQUE(date, hour)
	);
	CREATE TABLE IF NOT EXISTS daily_records (
		date TEXT NOT NULL,
		mean_mw REAL NOT NULL,
		peak_mw REAL NOT NULL,
		trough_mw REAL NOT NULL,
		peak_to_mean REAL NOT NULL,
		peak_to_trough REAL NOT NULL,
		samples INTEGER NOT NULL,
		UNIQUE(date)
	);
	CREATE TABLE IF NOT EXISTS model_fits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_at TEXT NOT NULL,
		regime TEXT NOT NULL,
		n INTEGER NOT NULL,
		intercept REAL NOT NULL,
		slope REAL NOT NULL,
		r2 REAL NOT NULL,
		residual_se REAL NOT NULL,
		temp_min_f REAL NOT NULL,
		temp_max_f REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_readings_ts ON readings(ts);
	CREATE INDEX IF NOT EXISTS idx_temperatures_date ON temperatures(date);
	CREATE INDEX IF NOT EXISTS idx_model_fits_regime ON model_fits(regime, run_at);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// InsertReadings inserts demand readings, ignoring duplicate timestamps.
// Returns the number of rows actually inserted.
func (db *DB) InsertReadings(readings []models.Reading) (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO readings (ts, demand_mw, created_at) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	createdAt := time.Now().UTC().Format(time.RFC3339)
	inserted := 0
	for _, r := range readings {
		res, err := stmt.Exec(r.Timestamp.UTC().Format(timeFormat), r.DemandMW, createdAt)
		if err != nil {
			return inserted, fmt.Errorf("inserting reading: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("committing readings: %w", err)
	}
	return inserted, nil
}

// ListReadings retrieves all demand readings ordered by timestamp
func (db *DB) ListReadings() ([]models.Reading, error) {
	rows, err := db.conn.Query(`SELECT ts, demand_mw FROM readings ORDER BY ts`)
	if err != nil {
		return nil, fmt.Errorf("querying readings: %w", err)
	}
	defer rows.Close()

	var results []models.Reading
	for rows.Next() {
		var r models.Reading
		var tsStr string
		if err := rows.Scan(&tsStr, &r.DemandMW); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.Timestamp, err = time.ParseInLocation(timeFormat, tsStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parsing ts: %w", err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

// InsertTemperatures inserts daily temperature records, ignoring duplicate
// dates. Returns the number of rows actually inserted.
func (db *DB) InsertTemperatures(records []models.TemperatureRecord) (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO temperatures (date, temp_f, created_at) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	createdAt := time.Now().UTC().Format(time.RFC3339)
	inserted := 0
	for _, t := range records {
		res, err := stmt.Exec(t.Date.Format(dateFormat), t.TempF, createdAt)
		if err != nil {
			return inserted, fmt.Errorf("inserting temperature: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("committing temperatures: %w", err)
	}
	return inserted, nil
}

// ListTemperatures retrieves all temperature records ordered by date
func (db *DB) ListTemperatures() ([]models.TemperatureRecord, error) {
	rows, err := db.conn.Query(`SELECT date, temp_f FROM temperatures ORDER BY date`)
	if err != nil {
		return nil, fmt.Errorf("querying temperatures: %w", err)
	}
	defer rows.Close()

	var results []models.TemperatureRecord
	for rows.Next() {
		var t models.TemperatureRecord
		var dateStr string
		if err := rows.Scan(&dateStr, &t.TempF); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		t.Date, err = time.ParseInLocation(dateFormat, dateStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parsing date: %w", err)
		}
		results = append(results, t)
	}

	return results, rows.Err()
}

// ReplaceHourlyRecords replaces the derived hourly table with the given
// records. Derived tables are recomputed wholesale each run, never patched.
func (db *DB) ReplaceHourlyRecords(records []models.HourlyRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM hourly_records`); err != nil {
		return fmt.Errorf("clearing hourly records: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO hourly_records (date, hour, mean_mw, samples) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, h := range records {
		if _, err := stmt.Exec(h.Date.Format(dateFormat), h.Hour, h.MeanMW, h.Samples); err != nil {
			return fmt.Errorf("inserting hourly record: %w", err)
		}
	}

	return tx.Commit()
}

// ReplaceDailyRecords replaces the derived daily table with the given records
func (db *DB) ReplaceDailyRecords(records []models.DailyRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM daily_records`); err != nil {
		return fmt.Errorf("clearing daily records: %w", err)
	}

	stmt, err := tx.Prepare(`
	INSERT INTO daily_records (date, mean_mw, peak_mw, trough_mw, peak_to_mean, peak_to_trough, samples)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range records {
		if _, err := stmt.Exec(d.Date.Format(dateFormat), d.MeanMW, d.PeakMW, d.TroughMW, d.PeakToMean, d.PeakToTrough, d.Samples); err != nil {
			return fmt.Errorf("inserting daily record: %w", err)
		}
	}

	return tx.Commit()
}

// ListDailyRecords retrieves the derived daily records ordered by date
func (db *DB) ListDailyRecords() ([]models.DailyRecord, error) {
	rows, err := db.conn.Query(`
	SELECT date, mean_mw, peak_mw, trough_mw, peak_to_mean, peak_to_trough, samples
	FROM daily_records ORDER BY date
	`)
	if err != nil {
		return nil, fmt.Errorf("querying daily records: %w", err)
	}
	defer rows.Close()

	var results []models.DailyRecord
	for rows.Next() {
		var d models.DailyRecord
		var dateStr string
		if err := rows.Scan(&dateStr, &d.MeanMW, &d.PeakMW, &d.TroughMW, &d.PeakToMean, &d.PeakToTrough, &d.Samples); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		d.Date, err = time.ParseInLocation(dateFormat, dateStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parsing date: %w", err)
		}
		results = append(results, d)
	}

	return results, rows.Err()
}

// InsertModelFit records one regime's fit parameters for a run
func (db *DB) InsertModelFit(runAt time.Time, m *models.FittedModel) error {
	query := `
	INSERT INTO model_fits (run_at, regime, n, intercept, slope, r2, residual_se, temp_min_f, temp_max_f)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.conn.Exec(query, runAt.UTC().Format(time.RFC3339), string(m.Regime),
		m.N, m.Intercept, m.Slope, m.R2, m.ResidualSE, m.TempMinF, m.TempMaxF)
	if err != nil {
		return fmt.Errorf("inserting model fit: %w", err)
	}
	return nil
}

// LatestModelFit retrieves the most recently stored fit for a regime.
// Returns nil if no fit has been stored.
func (db *DB) LatestModelFit(regime models.Regime) (*models.FittedModel, error) {
	query := `
	SELECT regime, n, intercept, slope, r2, residual_se, temp_min_f, temp_max_f
	FROM model_fits
	WHERE regime = ?
	ORDER BY run_at DESC, id DESC
	LIMIT 1
	`
	row := db.conn.QueryRow(query, string(regime))

	var m models.FittedModel
	var regimeStr string
	err := row.Scan(&regimeStr, &m.N, &m.Intercept, &m.Slope, &m.R2, &m.ResidualSE, &m.TempMinF, &m.TempMaxF)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying model fit: %w", err)
	}
	m.Regime = models.Regime(regimeStr)

	return &m, nil
}
