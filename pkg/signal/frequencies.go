package signal

// Nominal center frequencies per IEC 61260, in Hz. These anchor the major
// tick marks of the frequency-series axis and the default analysis bins.
var (
	NominalThirdOctaveCenterFrequencies = []float64{
		12.5, 16, 20, 25, 31.5, 40, 50, 63, 80, 100,
		125, 160, 200, 250, 315, 400, 500, 630, 800, 1000,
		1250, 1600, 2000, 2500, 3150, 4000, 5000, 6300, 8000, 10000,
		12500, 16000, 20000,
	}

	NominalFullOctaveCenterFrequencies = []float64{
		16, 31.5, 63, 125, 250, 500, 1000, 2000, 4000, 8000, 16000,
	}
)

// Default display limits, slightly beyond the typical human hearing range to
// cover sub-bass effects and measurement headroom.
const (
	DefaultLowestFrequency  = 15.0
	DefaultHighestFrequency = 20000.0
)

// ClampedRangeIndices returns the first and last bin indices whose center
// frequencies fall inside [lowest, highest]. When limited is false, or no
// bin falls inside the limits, the full bin range is returned.
func ClampedRangeIndices(bins []float64, limited bool, lowest, highest float64) (int, int) {
	if len(bins) == 0 {
		return 0, 0
	}

	start, stop := 0, len(bins)-1
	if !limited {
		return start, stop
	}

	for start < len(bins) && bins[start] < lowest {
		start++
	}
	for stop >= 0 && bins[stop] > highest {
		stop--
	}
	if start > stop {
		return 0, len(bins) - 1
	}
	return start, stop
}
