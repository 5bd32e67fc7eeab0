package metrics

import "math"

// Summary aggregates one metric across the runs of a session.
type Summary struct {
	Mean   float64   `json:"mean"`
	Stdev  float64   `json:"stdev"`
	Values []float64 `json:"values"`
}

// Summarize aggregates per-run reports into per-metric summaries. Metrics
// absent from some runs are summarized over the runs that reported them.
func Summarize(runs []Report) map[string]Summary {
	if len(runs) == 0 {
		return nil
	}
	values := make(map[string][]float64)
	for _, r := range runs {
		for k, v := range r {
			values[k] = append(values[k], v)
		}
	}
	out := make(map[string]Summary, len(values))
	for k, v := range values {
		out[k] = Summary{
			Mean:   mean(v),
			Stdev:  stdev(v),
			Values: v,
		}
	}
	return out
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}

// stdev is the sample standard deviation; zero for fewer than two values.
func stdev(v []float64) float64 {
	if len(v) < 2 {
		return 0
	}
	m := mean(v)
	var sum float64
	for _, x := range v {
		sum += (x - m) * (x - m)
	}
	return math.Sqrt(sum / float64(len(v)-1))
}
