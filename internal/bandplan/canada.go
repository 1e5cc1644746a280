package bandplan

import "slices"

// MHz is one megahertz in Hz.
const MHz = 1e6

// Canadian amateur bands.
const (
	Band2200m BandName = "2200m"
	Band630m  BandName = "630m"
	Band160m  BandName = "160m"
	Band80m   BandName = "80m"
	Band60m   BandName = "60m"
	Band40m   BandName = "40m"
	Band30m   BandName = "30m"
	Band20m   BandName = "20m"
	Band17m   BandName = "17m"
	Band15m   BandName = "15m"
	Band12m   BandName = "12m"
	Band10m   BandName = "10m"
	Band6m    BandName = "6m"
	Band2m    BandName = "2m"
	Band125cm BandName = "1.25m"
	Band70cm  BandName = "70cm"
)

// Canada returns the Canadian band plan (RAC), 2200m to 70cm. The returned
// plan is a copy; the reference table itself is never modified.
func Canada() Plan {
	plan := make(Plan, len(canada))
	for i, b := range canada {
		b.Ticks = slices.Clone(b.Ticks)
		b.Segments = slices.Clone(b.Segments)
		plan[i] = b
	}
	return plan
}

func band(name BandName, from, to, viewFrom, viewTo float64, precision int, tickMHz []float64, segments ...Segment) Band {
	ticks := make([]float64, len(tickMHz))
	for i, t := range tickMHz {
		ticks[i] = t * MHz
	}
	slices.Sort(ticks)

	return Band{
		FrequencyRange: FrequencyRange{From: from * MHz, To: to * MHz},
		Name:           name,
		View:           FrequencyRange{From: viewFrom * MHz, To: viewTo * MHz},
		Ticks:          ticks,
		TickPrecision:  precision,
		Segments:       segments,
	}
}

func seg(from, to float64, mode Mode, lane Lane, label string) Segment {
	return Segment{
		FrequencyRange: FrequencyRange{From: from * MHz, To: to * MHz},
		Mode:           mode,
		Lane:           lane,
		Label:          label,
	}
}

// sixtyMeterChannel splits a 60m channel into the three modes it is shared by.
func sixtyMeterChannel(from, to float64, labelled bool) []Segment {
	cw, phone, digi := "", "", ""
	if labelled {
		cw, phone, digi = "CW", "USB", "Digi"
	}
	return []Segment{
		seg(from, to, ModeCW, LaneTop, cw),
		seg(from, to, ModePhone, LaneMiddle, phone),
		seg(from, to, ModeDigital, LaneBottom, digi),
	}
}

var canada = Plan{
	band(Band2200m, 0.1357, 0.1378, 0.1356, 0.1379, 4,
		[]float64{0.1357, 0.1374, 0.1376, 0.1378},
		seg(0.1357, 0.1374, ModeCW, LaneFull, "CW"),
		seg(0.1374, 0.1376, ModeDigital, LaneFull, "Digi"),
		seg(0.1376, 0.1378, ModeMisc, LaneFull, "QRSS"),
	),

	band(Band630m, 0.472, 0.479, 0.4716, 0.4794, 3,
		[]float64{0.472, 0.475, 0.479},
		seg(0.472, 0.475, ModeCW, LaneFull, "CW"),
		seg(0.475, 0.479, ModeCW, LaneUpper, ""),
		seg(0.475, 0.479, ModeDigital, LaneLower, "Digi"),
	),

	band(Band160m, 1.800, 2.000, 1.790, 2.010, 3,
		[]float64{1.800, 1.810, 1.840, 2.000},
		seg(1.800, 1.810, ModeCW, LaneUpper, ""),
		seg(1.800, 1.810, ModeDigital, LaneLower, "Digi"),
		seg(1.810, 1.840, ModeCW, LaneFull, "CW"),
		seg(1.840, 2.000, ModePhone, LaneFull, "LSB"),
	),

	band(Band80m, 3.500, 4.000, 3.475, 4.025, 3,
		[]float64{3.500, 3.580, 3.600, 3.842, 4.000},
		seg(3.500, 3.580, ModeCW, LaneFull, "CW"),
		seg(3.580, 3.583, ModeDigital, LaneFull, ""),
		seg(3.583, 3.589, ModeCW, LaneFull, ""),
		seg(3.589, 3.600, ModeDigital, LaneFull, "D"),
		seg(3.600, 3.842, ModePhone, LaneFull, "LSB"),
		seg(3.842, 3.845, ModeTV, LaneFull, "TV"),
		seg(3.845, 4.000, ModePhone, LaneFull, "LSB"),
	),

	band(Band60m, 5.3305, 5.4065, 5.327, 5.409, 4,
		[]float64{5.3305, 5.3335, 5.3465, 5.3495, 5.3515, 5.3665, 5.3715, 5.3745, 5.4035, 5.4065},
		slices.Concat(
			sixtyMeterChannel(5.3305, 5.3335, true),
			sixtyMeterChannel(5.3465, 5.3495, false),
			sixtyMeterChannel(5.3515, 5.3665, false),
			sixtyMeterChannel(5.3715, 5.3745, false),
			sixtyMeterChannel(5.4035, 5.4065, false),
		)...,
	),

	band(Band40m, 7.000, 7.300, 6.985, 7.315, 3,
		[]float64{7.000, 7.040, 7.070, 7.125, 7.165, 7.175, 7.300},
		seg(7.000, 7.035, ModeCW, LaneFull, "CW"),
		seg(7.035, 7.040, ModeCW, LaneUpper, ""),
		seg(7.035, 7.040, ModeDigital, LaneLower, "D"),
		seg(7.040, 7.070, ModePhone, LaneFull, ""),
		seg(7.070, 7.125, ModePhone, LaneUpper, "LSB"),
		seg(7.070, 7.125, ModeDigital, LaneLower, "Digi"),
		seg(7.125, 7.165, ModePhone, LaneFull, ""),
		seg(7.165, 7.175, ModeTV, LaneFull, "TV"),
		seg(7.175, 7.300, ModePhone, LaneFull, "LSB"),
	),

	band(Band30m, 10.100, 10.150, 10.097, 10.153, 3,
		[]float64{10.100, 10.130, 10.140, 10.150},
		seg(10.100, 10.130, ModeCW, LaneFull, "CW"),
		seg(10.130, 10.140, ModeDigital, LaneFull, "Digi"),
		seg(10.140, 10.150, ModeCW, LaneUpper, "CW"),
		seg(10.140, 10.150, ModeDigital, LaneLower, ""),
	),

	band(Band20m, 14.000, 14.350, 13.980, 14.370, 3,
		[]float64{14.000, 14.070, 14.112, 14.230, 14.350},
		seg(14.000, 14.070, ModeCW, LaneFull, "CW"),
		seg(14.070, 14.073, ModeDigital, LaneFull, ""),
		seg(14.073, 14.1005, ModeCW, LaneUpper, "CW"),
		seg(14.073, 14.1005, ModeDigital, LaneLower, "Digi"),
		seg(14.1005, 14.112, ModeDigital, LaneFull, ""),
		seg(14.112, 14.230, ModePhone, LaneFull, "USB"),
		seg(14.230, 14.236, ModeTV, LaneFull, "TV"),
		seg(14.236, 14.350, ModePhone, LaneFull, "USB"),
	),

	band(Band17m, 18.068, 18.168, 18.062, 18.174, 3,
		[]float64{18.068, 18.095, 18.100, 18.110, 18.168},
		seg(18.068, 18.095, ModeCW, LaneFull, "CW"),
		seg(18.095, 18.100, ModeCW, LaneUpper, ""),
		seg(18.095, 18.100, ModeDigital, LaneLower, ""),
		seg(18.100, 18.110, ModeDigital, LaneFull, "Digi"),
		seg(18.110, 18.168, ModePhone, LaneFull, "USB"),
	),

	band(Band15m, 21.000, 21.450, 20.975, 21.475, 3,
		[]float64{21.000, 21.070, 21.125, 21.150, 21.340, 21.450},
		seg(21.000, 21.070, ModeCW, LaneFull, "CW"),
		seg(21.070, 21.080, ModeCW, LaneUpper, ""),
		seg(21.070, 21.080, ModeDigital, LaneLower, ""),
		seg(21.080, 21.125, ModeDigital, LaneFull, "Digi"),
		seg(21.125, 21.150, ModeCW, LaneFull, "CW"),
		seg(21.150, 21.340, ModePhone, LaneFull, "USB"),
		seg(21.340, 21.343, ModeTV, LaneFull, "TV"),
		seg(21.343, 21.450, ModePhone, LaneFull, "USB"),
	),

	band(Band12m, 24.890, 24.990, 24.884, 24.996, 3,
		[]float64{24.890, 24.920, 24.925, 24.940, 24.975, 24.990},
		seg(24.890, 24.920, ModeCW, LaneFull, "CW"),
		seg(24.920, 24.925, ModeDigital, LaneFull, ""),
		seg(24.925, 24.940, ModeCW, LaneUpper, "CW"),
		seg(24.925, 24.940, ModeDigital, LaneLower, "Digi"),
		seg(24.940, 24.975, ModePhone, LaneFull, "USB"),
		seg(24.975, 24.978, ModeTV, LaneFull, "TV"),
		seg(24.978, 24.990, ModePhone, LaneFull, "USB"),
	),

	band(Band10m, 28.000, 29.700, 27.900, 29.800, 3,
		[]float64{28.000, 28.070, 28.1895, 28.320, 28.680, 29.300, 29.520, 29.700},
		seg(28.000, 28.070, ModeCW, LaneFull, "CW"),
		seg(28.070, 28.1895, ModeCW, LaneUpper, ""),
		seg(28.070, 28.1895, ModeDigital, LaneLower, "Digi"),
		seg(28.1895, 28.2005, ModeBeacon, LaneFull, ""),
		seg(28.2005, 28.300, ModeCW, LaneUpper, "CW"),
		seg(28.2005, 28.300, ModeBeacon, LaneLower, "Beacon"),
		seg(28.300, 28.320, ModeCW, LaneUpper, ""),
		seg(28.300, 28.320, ModeDigital, LaneLower, "D"),
		seg(28.320, 28.680, ModePhone, LaneFull, "USB"),
		seg(28.680, 28.683, ModeTV, LaneFull, "TV"),
		seg(28.683, 29.300, ModePhone, LaneFull, "USB"),
		seg(29.300, 29.520, ModeMisc, LaneFull, "Sat"),
		seg(29.520, 29.700, ModePhone, LaneFull, "FM"),
	),

	band(Band6m, 50.000, 54.000, 49.780, 54.230, 1,
		[]float64{50.000, 50.600, 51.100, 52.000, 53.000, 54.000},
		seg(50.000, 50.100, ModePhone, LaneTop, ""),
		seg(50.000, 50.100, ModeBeacon, LaneMiddle, "Beac"),
		seg(50.000, 50.100, ModeCW, LaneBottom, "CW"),
		seg(50.100, 50.600, ModePhone, LaneFull, "USB"),
		seg(50.600, 51.000, ModeMisc, LaneFull, "Experimental"),
		seg(51.000, 51.100, ModePhone, LaneUpper, "DX"),
		seg(51.000, 51.100, ModeCW, LaneLower, "CW"),
		seg(51.100, 52.000, ModePhone, LaneUpper, "FM Simplex"),
		seg(51.100, 52.000, ModeDigital, LaneLower, "Packet"),
		seg(52.000, 53.000, ModePhone, LaneFull, "FM Repeater Input"),
		seg(53.000, 54.000, ModePhone, LaneFull, "FM Repeater Output"),
	),

	band(Band2m, 144.000, 148.000, 143.900, 148.100, 3,
		[]float64{144.000, 144.370, 144.510, 144.910, 145.110, 145.510, 145.710, 145.800, 146.020, 146.415, 146.620, 147.000, 147.420, 147.600, 148.000},
		seg(144.000, 144.370, ModeMisc, LaneFull, "Misc"),
		seg(144.370, 144.490, ModeDigital, LaneFull, "Digi"),
		seg(144.510, 144.590, ModePhone, LaneFull, "R1 in"),
		seg(144.610, 144.890, ModePhone, LaneFull, "R2 in"),
		seg(144.910, 145.090, ModeDigital, LaneFull, "DR in"),
		seg(145.110, 145.190, ModePhone, LaneFull, "R1 out"),
		seg(145.210, 145.490, ModePhone, LaneFull, "R2 out"),
		seg(145.510, 145.690, ModeDigital, LaneFull, "DR out"),
		seg(145.710, 145.790, ModeDigital, LaneFull, "Sx"),
		seg(145.800, 146.000, ModeMisc, LaneFull, "Sat"),
		seg(146.020, 146.380, ModePhone, LaneFull, "R3 in"),
		seg(146.415, 146.595, ModePhone, LaneFull, "Sx"),
		seg(146.620, 146.980, ModePhone, LaneFull, "R3 out"),
		seg(147.000, 147.380, ModePhone, LaneFull, "R4 out"),
		seg(147.420, 147.585, ModeMisc, LaneFull, "Net Lk"),
		seg(147.600, 147.980, ModePhone, LaneFull, "R4 in"),
	),

	band(Band125cm, 222.000, 225.000, 221.850, 225.150, 2,
		[]float64{222.000, 222.150, 223.000, 224.000, 225.000},
		seg(222.000, 222.150, ModeCW, LaneFull, "Weak"),
		seg(222.150, 225.000, ModePhone, LaneFull, "FM"),
	),

	band(Band70cm, 430.000, 450.000, 429.500, 450.500, 3,
		[]float64{430.000, 431.000, 433.025, 435.000, 438.025, 440.025, 442.000, 445.025, 447.000, 450.000},
		seg(430.050, 430.950, ModeDigital, LaneFull, "Packet"),
		seg(431.000, 431.475, ModeUnallocated, LaneFull, ""),
		seg(431.500, 433.000, ModeMisc, LaneFull, "Misc"),
		seg(433.025, 434.000, ModeDigital, LaneFull, "R1 out"),
		seg(434.025, 434.975, ModePhone, LaneFull, "R1 out"),
		seg(435.000, 438.000, ModeMisc, LaneFull, "Sat"),
		seg(438.025, 439.000, ModeDigital, LaneFull, "R1 in"),
		seg(439.050, 439.950, ModeDigital, LaneUpper, "Packet"),
		seg(439.025, 439.975, ModePhone, LaneLower, ""),
		seg(440.025, 440.950, ModeDigital, LaneFull, "Digi out"),
		seg(441.000, 441.975, ModeDigital, LaneFull, "Link"),
		seg(442.000, 442.975, ModePhone, LaneFull, "R2 out"),
		seg(443.025, 444.975, ModePhone, LaneFull, "R3 out"),
		seg(445.025, 445.950, ModeDigital, LaneFull, "Digi in"),
		seg(446.000, 446.975, ModePhone, LaneFull, "Simplex"),
		seg(447.000, 447.975, ModePhone, LaneFull, "R2 in"),
		seg(448.025, 449.975, ModePhone, LaneFull, "R3 in"),
	),
}
