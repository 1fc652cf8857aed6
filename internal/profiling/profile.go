package profiling

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"salesnorm/domain/schema"
	"salesnorm/domain/table"
)

// ColumnProfile summarizes one numeric field of the canonical table, for
// the preview page.
type ColumnProfile struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Missing int     `json:"missing"`
	Sum     float64 `json:"sum"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Profiler computes numeric column summaries. Stateless.
type Profiler struct{}

// NewProfiler creates a profiler
func NewProfiler() *Profiler {
	return &Profiler{}
}

// Profile summarizes every numeric field of the table, in canonical column
// order. Columns with no present values report zero statistics.
func (p *Profiler) Profile(t *table.Table) []ColumnProfile {
	profiles := make([]ColumnProfile, 0, len(schema.NumericColumns))
	for _, col := range t.Columns {
		if !schema.IsNumeric(col) {
			continue
		}
		profiles = append(profiles, p.profileColumn(col, t.Column(col)))
	}
	return profiles
}

func (p *Profiler) profileColumn(name string, values []table.Value) ColumnProfile {
	profile := ColumnProfile{Name: name}

	data := make([]float64, 0, len(values))
	for _, v := range values {
		if v.IsNumeric() {
			data = append(data, v.AsFloat64())
		} else {
			profile.Missing++
		}
	}
	profile.Count = len(data)
	if len(data) == 0 {
		return profile
	}

	profile.Sum = floats.Sum(data)
	profile.Min = floats.Min(data)
	profile.Max = floats.Max(data)

	// stats errors only on empty input, which is excluded above.
	profile.Mean, _ = stats.Mean(data)
	profile.Median, _ = stats.Median(data)

	return profile
}
