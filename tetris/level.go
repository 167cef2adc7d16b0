package tetris

import "time"

const (
	linePoints  = 100
	levelPoints = 1000
)

// fallIntervals holds the time between automatic drops for levels 1 to 7.
var fallIntervals = []time.Duration{
	1000 * time.Millisecond,
	800 * time.Millisecond,
	600 * time.Millisecond,
	500 * time.Millisecond,
	400 * time.Millisecond,
	300 * time.Millisecond,
	200 * time.Millisecond,
}

// FallInterval returns how long the tetromino waits before it falls one row.
// Levels past the end of the table keep the fastest interval.
func FallInterval(level int) time.Duration {
	switch {
	case level < 1:
		level = 1
	case level > len(fallIntervals):
		level = len(fallIntervals)
	}
	return fallIntervals[level-1]
}

// LevelFor returns the level reached with score points.
func LevelFor(score int) int {
	return score/levelPoints + 1
}
