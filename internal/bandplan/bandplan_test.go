package bandplan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanada_BandsDoNotOverlap(t *testing.T) {
	plan := Canada()
	require.NotEmpty(t, plan)

	for i, b := range plan {
		assert.Less(t, b.From, b.To, "band %s", b.Name)
		if i > 0 {
			assert.LessOrEqual(t, plan[i-1].To, b.From, "band %s overlaps %s", b.Name, plan[i-1].Name)
		}
	}
}

func TestCanada_CoversAdvertisedRange(t *testing.T) {
	r := Canada().Range()

	assert.InDelta(t, 135_700.0, r.From, 1e-6)
	assert.InDelta(t, 450_000_000.0, r.To, 1e-6)
}

func TestCanada_NamesAppearOnce(t *testing.T) {
	expected := []BandName{
		Band2200m, Band630m, Band160m, Band80m, Band60m, Band40m, Band30m, Band20m,
		Band17m, Band15m, Band12m, Band10m, Band6m, Band2m, Band125cm, Band70cm,
	}

	names := Canada().Names()
	assert.Equal(t, expected, names)

	seen := make(map[BandName]int)
	for _, name := range names {
		seen[name]++
	}
	for _, name := range expected {
		assert.Equal(t, 1, seen[name], "band %s", name)
	}
}

func TestCanada_SegmentsInsideBand(t *testing.T) {
	for _, b := range Canada() {
		assert.True(t, b.View.From <= b.From && b.View.To >= b.To, "band %s view does not contain allocation", b.Name)
		assert.NotEmpty(t, b.Ticks, "band %s", b.Name)

		for _, s := range b.Segments {
			assert.Less(t, s.From, s.To, "band %s segment %q", b.Name, s.Label)
			assert.GreaterOrEqual(t, s.From, b.From, "band %s segment %q", b.Name, s.Label)
			assert.LessOrEqual(t, s.To, b.To, "band %s segment %q", b.Name, s.Label)
		}
	}
}

func TestCanada_ReturnsCopy(t *testing.T) {
	plan := Canada()
	plan[0].Name = "changed"
	plan[0].Segments[0].Label = "changed"
	plan[0].Ticks[0] = 0

	fresh := Canada()
	assert.Equal(t, Band2200m, fresh[0].Name)
	assert.Equal(t, "CW", fresh[0].Segments[0].Label)
	assert.NotZero(t, fresh[0].Ticks[0])
}

func TestPlan_ByFrequency(t *testing.T) {
	plan := Canada()

	tests := []struct {
		freq float64
		want BandName
	}{
		{136_000, Band2200m},
		{3_750_000, Band80m},
		{5_357_000, Band60m},
		{14_074_000, Band20m},
		{146_520_000, Band2m},
		{446_000_000, Band70cm},
		{100_000_000, UnknownBand.Name},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, plan.ByFrequency(tt.freq).Name, "frequency %v", tt.freq)
	}
}

func TestPlan_Within(t *testing.T) {
	hf := Canada().Within(1*MHz, 55*MHz)

	assert.Equal(t, []BandName{
		Band160m, Band80m, Band60m, Band40m, Band30m, Band20m, Band17m, Band15m, Band12m, Band10m, Band6m,
	}, hf.Names())
}

func TestLane_Span(t *testing.T) {
	top, bottom := LaneFull.Span()
	assert.Equal(t, 0.0, top)
	assert.Equal(t, 1.0, bottom)

	top, bottom = LaneLower.Span()
	assert.Equal(t, 0.5, top)
	assert.Equal(t, 1.0, bottom)
}
