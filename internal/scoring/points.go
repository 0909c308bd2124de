// Package scoring holds the fixed points tables for race and sprint sessions.
package scoring

// PointsTable maps a finishing position to points. Index 0 holds the points
// for first place.
type PointsTable []int

// Race is the points table for the main race, P1 through P10.
var Race = PointsTable{25, 18, 15, 12, 10, 8, 6, 4, 2, 1}

// Sprint is the points table for the sprint, P1 through P8.
var Sprint = PointsTable{8, 7, 6, 5, 4, 3, 2, 1}

// Positions returns the number of scoring positions in the table
func (t PointsTable) Positions() int {
	return len(t)
}

// At returns the points for a finishing position, or 0 when the position
// does not score.
func (t PointsTable) At(position int) int {
	if position < 1 || position > t.Positions() {
		return 0
	}
	return t[position-1]
}

// For returns the points for an optional finishing position
func (t PointsTable) For(position *int) int {
	if position == nil {
		return 0
	}
	return t.At(*position)
}

// RacePoints returns the race points for a row. A DNF never scores.
func RacePoints(position *int, dnf bool) int {
	if dnf {
		return 0
	}
	return Race.For(position)
}

// SprintPoints returns the sprint points for an optional sprint position
func SprintPoints(position *int) int {
	return Sprint.For(position)
}
