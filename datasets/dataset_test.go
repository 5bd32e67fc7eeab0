package datasets

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitDataset(t *testing.T) {
	var d Dataset
	d.Init()
	d[1] = true
	d[2] = false
	d[3] = true

	sd := SplitDataset(d)
	require.Len(t, sd[0], 1)
	require.Len(t, sd[1], 2)
	_, ok := sd[1][1]
	require.True(t, ok)
	_, ok = sd[0][2]
	require.True(t, ok)
}

func TestBalanceDataset(t *testing.T) {
	var d Dataset
	d.Init()
	for i := uint32(0); i < 10; i++ {
		d[i] = true
	}
	d[100] = false

	sd := BalanceDataset(SplitDataset(d))
	require.Equal(t, len(sd[0]), len(sd[1]))
	for v := range sd[0] {
		_, ok := sd[1][v]
		require.False(t, ok, "balanced sets overlap on %d", v)
	}
}

func TestTallyMajority(t *testing.T) {
	tally := NewTally()
	tally.Add(5, 1, false)
	tally.Add(5, 1, false)
	tally.Add(5, -1, false)
	tally.Add(6, -1, true)
	tally.Add(7, 1, false)
	tally.Add(7, -1, false)

	require.True(t, tally.GetImprovementPossible())
	require.Equal(t, 3, tally.Len())

	d := tally.Dataset()
	require.Equal(t, Dataset{5: true, 6: false}, d)
}

func TestTallyNoImprovement(t *testing.T) {
	tally := NewTally()
	tally.Add(1, 1, false)
	require.False(t, tally.GetImprovementPossible())
}
