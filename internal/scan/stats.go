package scan

// DefaultBandwidthThreshold is the VSWR under which an antenna is usually
// considered matched without a tuner.
const DefaultBandwidthThreshold = 2.0

// Stats summarises a scan.
type Stats struct {
	Samples          int
	FrequencyMin     float64 // Lowest frequency in Hz
	FrequencyMax     float64 // Highest frequency in Hz
	MinVSWR          float64 // Best match found in the sweep
	MinVSWRFrequency float64 // Frequency of the best match in Hz

	// Contiguous range around the best match where VSWR stays at or below
	// the threshold. Both are zero when the best match exceeds it.
	BandwidthLow  float64
	BandwidthHigh float64
}

// Bandwidth returns the width in Hz of the matched range.
func (s Stats) Bandwidth() float64 {
	return s.BandwidthHigh - s.BandwidthLow
}

// Summarize computes Stats for a scan. Samples must be ordered by frequency.
func Summarize(s *Scan, threshold float64) Stats {
	var st Stats
	if len(s.Samples) == 0 {
		return st
	}

	st.Samples = len(s.Samples)
	st.FrequencyMin, st.FrequencyMax = s.FrequencyRange()

	best := 0
	for i, sample := range s.Samples {
		if sample.VSWR < s.Samples[best].VSWR {
			best = i
		}
	}
	st.MinVSWR = s.Samples[best].VSWR
	st.MinVSWRFrequency = s.Samples[best].Frequency

	if st.MinVSWR > threshold {
		return st
	}

	lo, hi := best, best
	for lo > 0 && s.Samples[lo-1].VSWR <= threshold {
		lo--
	}
	for hi < len(s.Samples)-1 && s.Samples[hi+1].VSWR <= threshold {
		hi++
	}
	st.BandwidthLow = s.Samples[lo].Frequency
	st.BandwidthHigh = s.Samples[hi].Frequency

	return st
}
