package standings

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSet() SeriesSet {
	return SeriesSet{
		{Name: "Alice", Samples: []Sample{{Round: 1, Label: "R1", Points: 25}, {Round: 2, Label: "R2", Points: 43}}},
		{Name: "Bob, Jr", Samples: []Sample{{Round: 1, Label: "R1", Points: 0}, {Round: 2, Label: "R2", Points: 25}}},
	}
}

func TestSeriesFinalAndDeltas(t *testing.T) {
	set := testSet()

	assert.Equal(t, 43, set[0].Final())
	assert.Equal(t, []int{25, 18}, set[0].Deltas())
	assert.Equal(t, 0, Series{}.Final())
}

func TestSeriesSetChart(t *testing.T) {
	rows := testSet().Chart()
	require.Len(t, rows, 2)

	assert.Equal(t, "R1", rows[0].Label)
	assert.Equal(t, 25, rows[0].Points["Alice"])
	assert.Equal(t, 0, rows[0].Points["Bob, Jr"])
	assert.Equal(t, 43, rows[1].Points["Alice"])
	assert.Equal(t, 25, rows[1].Points["Bob, Jr"])

	assert.Empty(t, SeriesSet{}.Chart())
}

func TestSeriesSetToCSV(t *testing.T) {
	data, err := testSet().ToCSV()
	require.NoError(t, err)
	assert.Equal(t, "label,Alice,\"Bob, Jr\"\nR1,25,0\nR2,43,25\n", string(data))
}

func TestSeriesSetToJSON(t *testing.T) {
	data, err := testSet().ToJSON()
	require.NoError(t, err)

	var rows []ChartRow
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, "R2", rows[1].Label)
	assert.Equal(t, 2, rows[1].Round)
	assert.Equal(t, map[string]int{"Alice": 43, "Bob, Jr": 25}, rows[1].Points)
}

func TestSeriesSetToJSONKeepsReservedNames(t *testing.T) {
	set := SeriesSet{
		{Name: "label", Samples: []Sample{{Round: 1, Label: "R1", Points: 25}}},
		{Name: "round", Samples: []Sample{{Round: 1, Label: "R1", Points: 12}}},
		{Name: "Bob", Samples: []Sample{{Round: 1, Label: "R1", Points: 18}}},
	}

	data, err := set.ToJSON()
	require.NoError(t, err)

	var rows []ChartRow
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "R1", rows[0].Label)
	assert.Equal(t, 1, rows[0].Round)
	assert.Equal(t, map[string]int{"label": 25, "round": 12, "Bob": 18}, rows[0].Points)
}

func TestSeriesSetCloneIsIndependent(t *testing.T) {
	original := testSet()
	clone := original.Clone()

	clone[0].Name = "Carol"
	clone[0].Samples[0].Points = 99

	assert.Equal(t, testSet(), original)
	assert.Nil(t, SeriesSet(nil).Clone())
}
