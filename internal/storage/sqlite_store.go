package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/roman-kulish/bandplan-vswr/internal/scan"
)

const (
	maxBatchSize = 100

	// maxBatchSizeLimit keeps a batch insert under SQLite's limit of 32766
	// bound variables per statement.
	maxBatchSizeLimit = sqliteMaxVariables / sampleColumns

	sqliteMaxVariables = 32766
	sampleColumns      = 6
)

// WithMaxBatchSize sets the maximum number of samples inserted by a single
// statement. Sizes above maxBatchSizeLimit are clamped.
func WithMaxBatchSize(size int) func(*SqliteStore) {
	return func(s *SqliteStore) {
		if size > 0 {
			s.maxBatchSize = min(size, maxBatchSizeLimit)
		}
	}
}

// SqliteStore handles database operations
type SqliteStore struct {
	dbPath       string
	maxBatchSize int

	writeDB     *sql.DB
	writeDBOnce sync.Once
	writeDBErr  error

	readDB     *sql.DB
	readDBOnce sync.Once
	readDBErr  error

	closeOnce sync.Once
	closeErr  error
}

var _ Store = (*SqliteStore)(nil)

// NewSqliteStore creates a new scan archive backed by the Sqlite database at
// dbPath. Connections are opened lazily; the schema is created on first write.
func NewSqliteStore(dbPath string, options ...func(*SqliteStore)) *SqliteStore {
	s := SqliteStore{
		dbPath:       dbPath,
		maxBatchSize: maxBatchSize,
	}

	for _, option := range options {
		option(&s)
	}

	return &s
}

func runSQLCommand(db *sql.DB, sql string) error {
	_, err := db.Exec(sql)
	return err
}

func (s *SqliteStore) getWriteDB() (*sql.DB, error) {
	s.writeDBOnce.Do(func() {
		db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?%s", s.dbPath, "_journal_mode=WAL&_synchronous=NORMAL"))
		if err != nil {
			s.writeDBErr = fmt.Errorf("opening write connection: %w", err)
			return
		}

		if err = runSQLCommand(db, initSchemaSQL); err != nil {
			_ = db.Close()
			s.writeDBErr = fmt.Errorf("initializing schema: %w", err)
			return
		}

		s.writeDB = db
	})

	return s.writeDB, s.writeDBErr
}

func (s *SqliteStore) getReadDB() (*sql.DB, error) {
	s.readDBOnce.Do(func() {
		db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?%s", s.dbPath, "mode=ro"))
		if err != nil {
			s.readDBErr = fmt.Errorf("opening read connection: %w", err)
			return
		}
		s.readDB = db
	})

	return s.readDB, s.readDBErr
}

func (s *SqliteStore) StoreScan(ctx context.Context, sc *scan.Scan) (scanID int64, err error) {
	db, err := s.getWriteDB()
	if err != nil {
		return 0, fmt.Errorf("getting write connection: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer rollbackWithError(tx, &err)

	path := sql.NullString{String: sc.Path, Valid: sc.Path != ""}
	result, err := tx.ExecContext(ctx, insertScanSQL, sc.Name, path, sc.ReferenceImpedance, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("inserting scan: %w", err)
	}

	if scanID, err = result.LastInsertId(); err != nil {
		return 0, fmt.Errorf("getting scan ID: %w", err)
	}

	seq := 0
	for chunk := range slices.Chunk(sc.Samples, s.maxBatchSize) {
		if err = insertSamples(ctx, tx, scanID, seq, chunk); err != nil {
			return 0, err
		}
		seq += len(chunk)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	return scanID, nil
}

func insertSamples(ctx context.Context, tx *sql.Tx, scanID int64, seq int, samples []scan.Sample) error {
	values := make([]any, 0, len(samples)*sampleColumns)

	var sb strings.Builder
	sb.WriteString(insertSampleSQL)

	for i, sample := range samples {
		data := toSampleData(scanID, seq+i, sample)
		values = append(values,
			data.ScanID,
			data.Seq,
			data.Frequency,
			data.VSWR,
			data.Resistance,
			data.Reactance,
		)

		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(sampleValuesPlaceholder)
	}

	if _, err := tx.ExecContext(ctx, sb.String(), values...); err != nil {
		return fmt.Errorf("batch inserting samples: %w", err)
	}
	return nil
}

func (s *SqliteStore) Scans(ctx context.Context) (scans []*ScanRecord, err error) {
	db, err := s.getReadDB()
	if err != nil {
		err = fmt.Errorf("getting read connection: %w", err)
		return
	}

	rows, err := db.QueryContext(ctx, selectLatestScansSQL)
	if err != nil {
		err = fmt.Errorf("querying scans: %w", err)
		return
	}
	defer closeWithError(rows, &err)

	for rows.Next() {
		var data scanData
		if err = rows.Scan(&data.ID, &data.Name, &data.Path, &data.ReferenceImpedance, &data.ArchivedAt, &data.NumSamples); err != nil {
			err = fmt.Errorf("scanning scan record: %w", err)
			return
		}
		scans = append(scans, toScanRecord(&data))
	}
	err = rows.Err()
	return
}

func (s *SqliteStore) ReadScan(ctx context.Context, id int64) (sc *scan.Scan, err error) {
	db, err := s.getReadDB()
	if err != nil {
		return nil, fmt.Errorf("getting read connection: %w", err)
	}

	var data scanData
	row := db.QueryRowContext(ctx, selectScanSQL, id)
	if err = row.Scan(&data.ID, &data.Name, &data.Path, &data.ReferenceImpedance, &data.ArchivedAt, &data.NumSamples); err != nil {
		return nil, fmt.Errorf("querying scan %d: %w", id, err)
	}

	iter, err := newSampleIterator(ctx, db, id)
	if err != nil {
		return nil, err
	}
	defer closeWithError(iter, &err)

	sc = &scan.Scan{
		Name:               data.Name,
		ReferenceImpedance: data.ReferenceImpedance,
		Samples:            make([]scan.Sample, 0, data.NumSamples),
	}
	for iter.Next(ctx) {
		sc.Samples = append(sc.Samples, iter.Current())
	}
	if err = iter.Error(); err != nil {
		return nil, fmt.Errorf("reading samples of scan %d: %w", id, err)
	}

	return sc, nil
}

func (s *SqliteStore) Close() error {
	s.closeOnce.Do(func() {
		var writeErr, readErr error

		if s.writeDB != nil {
			_ = runSQLCommand(s.writeDB, initIndexesSQL)

			writeErr = s.writeDB.Close()
			s.writeDB = nil
		}

		if s.readDB != nil {
			readErr = s.readDB.Close()
			s.readDB = nil
		}

		s.closeErr = errors.Join(writeErr, readErr)
	})

	return s.closeErr
}
