package bandplan

// BandName is the name of an amateur band, by its wavelength.
type BandName string

// Mode is the use a sub-band is allocated to.
type Mode string

// All modes used by the band plan.
const (
	ModeCW          Mode = "CW"
	ModeDigital     Mode = "Digital"
	ModePhone       Mode = "Phone"
	ModeTV          Mode = "TV"
	ModeBeacon      Mode = "Beacon"
	ModeMisc        Mode = "Misc"
	ModeUnallocated Mode = "Unallocated"
)

// Lane is the vertical slot of the band strip a segment occupies. Sub-bands
// shared between modes are drawn as stacked lanes.
type Lane int

const (
	LaneFull Lane = iota
	LaneUpper
	LaneLower
	LaneTop
	LaneMiddle
	LaneBottom
)

// Span returns the top and bottom of the lane as fractions of the strip
// height, 0 being the top edge.
func (l Lane) Span() (top, bottom float64) {
	switch l {
	case LaneUpper:
		return 0, 0.5
	case LaneLower:
		return 0.5, 1
	case LaneTop:
		return 0, 1.0 / 3
	case LaneMiddle:
		return 1.0 / 3, 2.0 / 3
	case LaneBottom:
		return 2.0 / 3, 1
	default:
		return 0, 1
	}
}

// FrequencyRange is a closed frequency interval in Hz.
type FrequencyRange struct {
	From float64
	To   float64
}

// Contains indicates if the range contains the given frequency.
func (r FrequencyRange) Contains(f float64) bool {
	return f >= r.From && f <= r.To
}

// Width returns the width of the range in Hz.
func (r FrequencyRange) Width() float64 {
	return r.To - r.From
}

// Segment is a sub-band allocated to a single mode.
type Segment struct {
	FrequencyRange
	Mode  Mode
	Lane  Lane
	Label string
}

// Band represents an amateur allocation together with the way it is drawn.
type Band struct {
	FrequencyRange
	Name BandName

	View          FrequencyRange // Frequency window of the band's chart panel
	Ticks         []float64      // Labelled frequencies in Hz
	TickPrecision int            // Decimal places used for tick labels in MHz
	Segments      []Segment      // Sub-bands, drawn in order
}

// UnknownBand is the band returned for frequencies outside the plan.
var UnknownBand = Band{Name: "Unknown"}

// Plan is an ordered list of non-overlapping bands.
type Plan []Band

// ByFrequency returns the band containing f, or UnknownBand.
func (p Plan) ByFrequency(f float64) Band {
	for _, b := range p {
		if b.Contains(f) {
			return b
		}
	}
	return UnknownBand
}

// Names returns the band names in plan order.
func (p Plan) Names() []BandName {
	names := make([]BandName, len(p))
	for i, b := range p {
		names[i] = b.Name
	}
	return names
}

// Range returns the lowest and highest allocated frequency.
func (p Plan) Range() FrequencyRange {
	if len(p) == 0 {
		return FrequencyRange{}
	}
	return FrequencyRange{From: p[0].From, To: p[len(p)-1].To}
}

// Within returns the bands lying entirely inside [from, to].
func (p Plan) Within(from, to float64) Plan {
	var bands Plan
	for _, b := range p {
		if b.From >= from && b.To <= to {
			bands = append(bands, b)
		}
	}
	return bands
}
