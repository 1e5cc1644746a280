package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roman-kulish/bandplan-vswr/internal/scan"
)

// SampleIterator provides an iterator over the samples of an archived scan
// in their original order.
type SampleIterator struct {
	rows    *sql.Rows
	current scan.Sample
	err     error
}

func newSampleIterator(ctx context.Context, db *sql.DB, scanID int64) (*SampleIterator, error) {
	if db == nil {
		return nil, errors.New("database connection required")
	}

	rows, err := db.QueryContext(ctx, selectSamplesSQL, scanID)
	if err != nil {
		return nil, fmt.Errorf("querying samples: %w", err)
	}
	return &SampleIterator{rows: rows}, nil
}

// Next advances the iterator and returns true if there is another sample to
// read, false when the iteration is complete or if an error occurred.
func (it *SampleIterator) Next(ctx context.Context) bool {
	if it.err != nil || it.rows == nil {
		return false
	}

	select {
	case <-ctx.Done():
		it.err = ctx.Err()
		return false
	default:
	}

	if !it.rows.Next() {
		return false
	}

	var data sampleData
	if it.err = it.rows.Scan(&data.Frequency, &data.VSWR, &data.Resistance, &data.Reactance); it.err != nil {
		it.err = fmt.Errorf("scanning sample: %w", it.err)
		return false
	}

	it.current = scan.Sample{
		Frequency:  data.Frequency,
		VSWR:       data.VSWR,
		Resistance: toPtr(data.Resistance),
		Reactance:  toPtr(data.Reactance),
	}
	return true
}

// Current returns the sample read by the last call to Next.
func (it *SampleIterator) Current() scan.Sample {
	return it.current
}

// Error returns any error that occurred during iteration.
func (it *SampleIterator) Error() error {
	if it.err != nil {
		return it.err
	}
	if it.rows != nil {
		return it.rows.Err()
	}
	return nil
}

// Close releases the underlying rows. It is safe to call Close multiple times.
func (it *SampleIterator) Close() error {
	if it.rows != nil {
		err := it.rows.Close()
		it.rows = nil
		return err
	}
	return nil
}
