package standings

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
)

// Sample is an entity's cumulative points after one event
type Sample struct {
	Round  int    `json:"round"`
	Label  string `json:"label"`
	Points int    `json:"points"`
}

// Series is the cumulative points history of one driver or team
type Series struct {
	Name    string   `json:"name"`
	Samples []Sample `json:"samples"`
}

// Final returns the last cumulative total, or 0 for an empty series
func (s Series) Final() int {
	if len(s.Samples) == 0 {
		return 0
	}
	return s.Samples[len(s.Samples)-1].Points
}

// Deltas returns the points gained at each event
func (s Series) Deltas() []int {
	deltas := make([]int, len(s.Samples))
	prev := 0
	for i, sample := range s.Samples {
		deltas[i] = sample.Points - prev
		prev = sample.Points
	}
	return deltas
}

// SeriesSet holds one series per tracked entity, in snapshot order
type SeriesSet []Series

// ChartRow is one x-axis point of a line chart: the event label plus the
// cumulative points of every entity at that event. Points stays nested so an
// entity may be named anything, including "round" or "label".
type ChartRow struct {
	Round  int            `json:"round"`
	Label  string         `json:"label"`
	Points map[string]int `json:"points"`
}

// Clone returns a deep copy of the set
func (s SeriesSet) Clone() SeriesSet {
	if s == nil {
		return nil
	}
	out := make(SeriesSet, len(s))
	for i, series := range s {
		samples := make([]Sample, len(series.Samples))
		copy(samples, series.Samples)
		out[i] = Series{Name: series.Name, Samples: samples}
	}
	return out
}

// Names returns the entity names in order
func (s SeriesSet) Names() []string {
	names := make([]string, len(s))
	for i, series := range s {
		names[i] = series.Name
	}
	return names
}

// Chart pivots the set into one row per event
func (s SeriesSet) Chart() []ChartRow {
	if len(s) == 0 {
		return []ChartRow{}
	}
	rows := make([]ChartRow, len(s[0].Samples))
	for i, sample := range s[0].Samples {
		rows[i] = ChartRow{
			Round:  sample.Round,
			Label:  sample.Label,
			Points: make(map[string]int, len(s)),
		}
	}
	for _, series := range s {
		for i, sample := range series.Samples {
			if i < len(rows) {
				rows[i].Points[series.Name] = sample.Points
			}
		}
	}
	return rows
}

// ToCSV exports the set with one line per event and one column per entity
func (s SeriesSet) ToCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	names := s.Names()
	if err := w.Write(append([]string{"label"}, names...)); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range s.Chart() {
		record := make([]string, 0, len(names)+1)
		record = append(record, row.Label)
		for _, name := range names {
			record = append(record, strconv.Itoa(row.Points[name]))
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write csv row %s: %w", row.Label, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ToJSON exports the chart rows as a JSON array
func (s SeriesSet) ToJSON() ([]byte, error) {
	data, err := json.Marshal(s.Chart())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chart rows: %w", err)
	}
	return data, nil
}
