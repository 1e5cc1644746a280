package storage

import (
	"database/sql"
	"errors"

	"github.com/roman-kulish/bandplan-vswr/internal/scan"
)

func closeWithError(cl interface{ Close() error }, err *error) {
	if cErr := cl.Close(); cErr != nil && *err == nil {
		*err = cErr
	}
}

func rollbackWithError(rb interface{ Rollback() error }, err *error) {
	if cErr := rb.Rollback(); cErr != nil && !errors.Is(cErr, sql.ErrTxDone) && *err == nil {
		*err = cErr
	}
}

func toSampleData(scanID int64, seq int, s scan.Sample) *sampleData {
	return &sampleData{
		ScanID:    scanID,
		Seq:       seq,
		Frequency: s.Frequency,
		VSWR:      s.VSWR,
		Resistance: sql.NullFloat64{
			Float64: fromPtr(s.Resistance),
			Valid:   s.Resistance != nil,
		},
		Reactance: sql.NullFloat64{
			Float64: fromPtr(s.Reactance),
			Valid:   s.Reactance != nil,
		},
	}
}

func toScanRecord(d *scanData) *ScanRecord {
	return &ScanRecord{
		ID:                 d.ID,
		Name:               d.Name,
		Path:               d.Path.String,
		ReferenceImpedance: d.ReferenceImpedance,
		ArchivedAt:         d.ArchivedAt,
		NumSamples:         d.NumSamples,
	}
}

func fromPtr[T float64 | int64](v *T) T {
	if v == nil {
		return 0
	}
	return *v
}

func toPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
