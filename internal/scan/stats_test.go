package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func scanOf(points ...[2]float64) *Scan {
	s := &Scan{Name: "test.asd", ReferenceImpedance: DefaultReferenceImpedance}
	for _, p := range points {
		s.Samples = append(s.Samples, Sample{Frequency: p[0], VSWR: p[1]})
	}
	return s
}

func TestSummarize(t *testing.T) {
	s := scanOf(
		[2]float64{7_000_000, 2.8},
		[2]float64{7_050_000, 1.9},
		[2]float64{7_100_000, 1.2},
		[2]float64{7_150_000, 1.6},
		[2]float64{7_200_000, 2.0},
		[2]float64{7_250_000, 2.4},
		[2]float64{7_300_000, 1.5},
	)

	st := Summarize(s, DefaultBandwidthThreshold)

	assert.Equal(t, 7, st.Samples)
	assert.Equal(t, 7_000_000.0, st.FrequencyMin)
	assert.Equal(t, 7_300_000.0, st.FrequencyMax)
	assert.Equal(t, 1.2, st.MinVSWR)
	assert.Equal(t, 7_100_000.0, st.MinVSWRFrequency)

	// the dip at 7.3 MHz is not contiguous with the best match
	assert.Equal(t, 7_050_000.0, st.BandwidthLow)
	assert.Equal(t, 7_200_000.0, st.BandwidthHigh)
	assert.Equal(t, 150_000.0, st.Bandwidth())
}

func TestSummarize_NoMatch(t *testing.T) {
	st := Summarize(scanOf([2]float64{3_500_000, 4}, [2]float64{3_600_000, 3}), DefaultBandwidthThreshold)

	assert.Equal(t, 3.0, st.MinVSWR)
	assert.Zero(t, st.Bandwidth())
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, Summarize(&Scan{}, DefaultBandwidthThreshold))
}
