package scan

// Sample represents a single analyzer reading at a specific frequency.
type Sample struct {
	Frequency  float64  `json:"frequency"`            // Frequency in Hz
	VSWR       float64  `json:"vswr"`                 // Voltage standing wave ratio, always >= 1
	Resistance *float64 `json:"resistance,omitempty"` // Series resistance in ohms (nil if the row carried VSWR only)
	Reactance  *float64 `json:"reactance,omitempty"`  // Series reactance in ohms (nil if the row carried VSWR only)
}

// Scan represents one frequency sweep exported by the analyzer.
// Samples keep the order of the source file and are non-decreasing in frequency.
type Scan struct {
	Name               string   `json:"name"`               // Label used on the chart, the source file name
	Path               string   `json:"path"`               // Source path, empty for archived scans
	ReferenceImpedance float64  `json:"referenceImpedance"` // Z0 in ohms used to derive VSWR
	Samples            []Sample `json:"samples,omitempty"`
}

// FrequencyRange returns the lowest and highest sample frequency.
// Both values are zero for an empty scan.
func (s *Scan) FrequencyRange() (low, high float64) {
	if len(s.Samples) == 0 {
		return 0, 0
	}
	return s.Samples[0].Frequency, s.Samples[len(s.Samples)-1].Frequency
}
