package storage

import (
	"context"

	"github.com/roman-kulish/bandplan-vswr/internal/scan"
)

// Store provides an interface for archiving analyzer scans so that earlier
// sweeps can be compared with new ones.
type Store interface {
	// StoreScan archives a scan together with all its samples in a single
	// transaction and returns the ID of the archived record.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeouts
	//   - s: Scan to archive, samples are stored in their current order
	//
	// Returns:
	//   - scanID: Unique identifier of the archived scan
	//   - error: If storage fails or context is cancelled
	StoreScan(ctx context.Context, s *scan.Scan) (scanID int64, err error)

	// Scans returns the most recent archived record of every scan name,
	// ordered by name.
	Scans(ctx context.Context) (scans []*ScanRecord, err error)

	// ReadScan rebuilds an archived scan.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeouts
	//   - id: Unique scan identifier
	//
	// Returns:
	//   - scan: Scan with samples in their archived order
	//   - error: If the scan does not exist, retrieval fails or context is cancelled
	ReadScan(ctx context.Context, id int64) (s *scan.Scan, err error)

	// Close releases all database connections and resources.
	// It is safe to call Close multiple times.
	Close() error
}
