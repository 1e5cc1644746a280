package storage

import (
	_ "embed"
)

//go:embed schema.sql
var initSchemaSQL string

const (
	initIndexesSQL = `
CREATE INDEX IF NOT EXISTS idx_scans_name ON scans (name);
CREATE INDEX IF NOT EXISTS idx_samples_scan_seq ON samples (scan_id, seq);`

	insertScanSQL = `
INSERT INTO scans (name,
                   path,
                   reference_impedance,
                   archived_at)
VALUES (?, ?, ?, ?)`

	insertSampleSQL = `
INSERT INTO samples (scan_id,
                     seq,
                     frequency,
                     vswr,
                     resistance,
                     reactance)
VALUES `

	sampleValuesPlaceholder = "(?, ?, ?, ?, ?, ?)"

	selectScanSQL = `
SELECT
    s.id,
    s.name,
    s.path,
    s.reference_impedance,
    s.archived_at,
    (SELECT COUNT(*) FROM samples WHERE scan_id = s.id)
FROM scans s
WHERE
    s.id = ?`

	selectLatestScansSQL = `
SELECT
    s.id,
    s.name,
    s.path,
    s.reference_impedance,
    s.archived_at,
    (SELECT COUNT(*) FROM samples WHERE scan_id = s.id)
FROM scans s
WHERE
    s.id IN (SELECT MAX(id) FROM scans GROUP BY name)
ORDER BY s.name`

	selectSamplesSQL = `
SELECT
    frequency,
    vswr,
    resistance,
    reactance
FROM samples
WHERE
    scan_id = ?
ORDER BY seq`
)
