// Package stats folds per-record processing outcomes into the run summary.
// Each processed record contributes one Delta; the orchestrator reduces the
// stream of deltas into a final Summary, so the aggregation is testable
// without running the pipeline.
package stats

import "time"

// Delta is one record's contribution to the run statistics.
type Delta struct {
	Succeeded      bool
	DescriptionLen int
	Channel        string
	Vertical       string
	Territory      string
	Attributable   bool
	SalesGenerated bool
}

// Accumulator holds the running fold state for one run.
type Accumulator struct {
	processed int
	succeeded int
	errored   int

	descLenTotal int

	channels    map[string]int
	verticals   map[string]int
	territories map[string]int

	attributable     int
	nonAttributable  int
	salesGenerated   int
	marketingSourced int
}

func NewAccumulator() *Accumulator {
	return &Accumulator{
		channels:    make(map[string]int),
		verticals:   make(map[string]int),
		territories: make(map[string]int),
	}
}

// Add folds one record's delta into the running state.
func (a *Accumulator) Add(d Delta) {
	a.processed++
	if d.Succeeded {
		a.succeeded++
		a.descLenTotal += d.DescriptionLen
	} else {
		a.errored++
	}

	if d.Channel != "" {
		a.channels[d.Channel]++
	}
	if d.Vertical != "" {
		a.verticals[d.Vertical]++
	}
	if d.Territory != "" {
		a.territories[d.Territory]++
	}

	if d.Attributable {
		a.attributable++
	} else {
		a.nonAttributable++
	}
	if d.SalesGenerated {
		a.salesGenerated++
	} else {
		a.marketingSourced++
	}
}

// Summary is the finalized run statistics handed to the report sink.
type Summary struct {
	RunID string

	Queried   int
	Processed int
	Succeeded int
	Errored   int

	SuccessRate float64
	// AvgDescriptionLen averages over successful rows only; error markers
	// would skew it.
	AvgDescriptionLen float64

	DistinctChannels    int
	DistinctVerticals   int
	DistinctTerritories int

	ChannelCounts  map[string]int
	VerticalCounts map[string]int

	Attributable     int
	NonAttributable  int
	SalesGenerated   int
	MarketingSourced int

	ElapsedSeconds float64
}

// Finalize closes the fold and produces the summary. queried is the total
// record count the extraction matched before any limit.
func (a *Accumulator) Finalize(queried int, elapsed time.Duration) Summary {
	s := Summary{
		Queried:             queried,
		Processed:           a.processed,
		Succeeded:           a.succeeded,
		Errored:             a.errored,
		DistinctChannels:    len(a.channels),
		DistinctVerticals:   len(a.verticals),
		DistinctTerritories: len(a.territories),
		ChannelCounts:       copyCounts(a.channels),
		VerticalCounts:      copyCounts(a.verticals),
		Attributable:        a.attributable,
		NonAttributable:     a.nonAttributable,
		SalesGenerated:      a.salesGenerated,
		MarketingSourced:    a.marketingSourced,
		ElapsedSeconds:      elapsed.Seconds(),
	}
	if a.processed > 0 {
		s.SuccessRate = float64(a.succeeded) / float64(a.processed)
	}
	if a.succeeded > 0 {
		s.AvgDescriptionLen = float64(a.descLenTotal) / float64(a.succeeded)
	}
	return s
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
