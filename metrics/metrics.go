// Package metrics holds the evaluation reports and their session-level
// aggregation.
package metrics

import "sort"

// Report maps metric names to values for one evaluation pass.
type Report map[string]float64

// Names returns the metric names in stable order.
func (r Report) Names() []string {
	names := make([]string, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Clone returns a copy of the report.
func (r Report) Clone() Report {
	if r == nil {
		return nil
	}
	o := make(Report, len(r))
	for k, v := range r {
		o[k] = v
	}
	return o
}
