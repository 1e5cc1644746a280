package storage

import (
	"database/sql"
	"time"
)

// ScanRecord describes an archived scan without its samples.
type ScanRecord struct {
	ID                 int64
	Name               string
	Path               string
	ReferenceImpedance float64
	ArchivedAt         time.Time
	NumSamples         int
}

type scanData struct {
	ID                 int64
	Name               string
	Path               sql.NullString
	ReferenceImpedance float64
	ArchivedAt         time.Time
	NumSamples         int
}

type sampleData struct {
	ScanID     int64
	Seq        int
	Frequency  float64
	VSWR       float64
	Resistance sql.NullFloat64
	Reactance  sql.NullFloat64
}
