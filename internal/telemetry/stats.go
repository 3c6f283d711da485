package telemetry

import (
	"time"

	"github.com/agbru/vedicmath/internal/sutra"
)

// SutraStats summarises the records attributed to one identity.
type SutraStats struct {
	Sutra       sutra.Sutra
	Count       int
	TotalTime   time.Duration
	MeanElapsed time.Duration
	// Share is Count divided by the number of stored records.
	Share float64
}

// Stats summarises a log.
type Stats struct {
	Total     int
	Vedic     int
	Fallbacks int
	Dropped   uint64
	Capacity  int
	// PerSutra is indexed by sutra.Sutra.
	PerSutra [sutra.Count]SutraStats
}

// Stats computes counts, mean elapsed time and usage share per identity
// over the stored records.
func (l *Log) Stats() Stats {
	s := Stats{Total: len(l.records), Dropped: l.dropped, Capacity: cap(l.records)}
	for i := range s.PerSutra {
		s.PerSutra[i].Sutra = sutra.Sutra(i)
	}
	for i := range l.records {
		r := &l.records[i]
		if int(r.Sutra) >= sutra.Count {
			continue
		}
		ps := &s.PerSutra[r.Sutra]
		ps.Count++
		ps.TotalTime += r.Elapsed
		if r.Sutra.IsVedic() {
			s.Vedic++
		}
		if r.Fallback {
			s.Fallbacks++
		}
	}
	for i := range s.PerSutra {
		ps := &s.PerSutra[i]
		if ps.Count == 0 {
			continue
		}
		ps.MeanElapsed = ps.TotalTime / time.Duration(ps.Count)
		ps.Share = float64(ps.Count) / float64(s.Total)
	}
	return s
}

// Used returns the per-identity entries with at least one record, in
// declaration order.
func (s Stats) Used() []SutraStats {
	var out []SutraStats
	for _, ps := range s.PerSutra {
		if ps.Count > 0 {
			out = append(out, ps)
		}
	}
	return out
}

// Truncated reports whether any record was dropped.
func (s Stats) Truncated() bool { return s.Dropped > 0 }
