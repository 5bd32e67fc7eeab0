package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReportNames(t *testing.T) {
	r := Report{"error": 2, "accuracy": 0.5}
	require.Equal(t, []string{"accuracy", "error"}, r.Names())
}

func TestReportClone(t *testing.T) {
	r := Report{"accuracy": 0.5}
	c := r.Clone()
	c["accuracy"] = 1
	require.Equal(t, 0.5, r["accuracy"])

	require.Nil(t, Report(nil).Clone())
}

func TestSummarize(t *testing.T) {
	runs := []Report{
		{"accuracy": 0.4, "error": 10},
		{"accuracy": 0.6, "error": 8},
		{"accuracy": 0.5},
	}
	s := Summarize(runs)

	require.InDelta(t, 0.5, s["accuracy"].Mean, 1e-9)
	require.InDelta(t, 0.1, s["accuracy"].Stdev, 1e-9)
	require.Len(t, s["accuracy"].Values, 3)

	require.InDelta(t, 9, s["error"].Mean, 1e-9)
	require.InDelta(t, math.Sqrt2, s["error"].Stdev, 1e-9)
	require.Len(t, s["error"].Values, 2)
}

func TestSummarizeSingleRun(t *testing.T) {
	s := Summarize([]Report{{"accuracy": 1}})
	require.Equal(t, 1.0, s["accuracy"].Mean)
	require.Zero(t, s["accuracy"].Stdev)
}

func TestSummarizeEmpty(t *testing.T) {
	require.Nil(t, Summarize(nil))
}
