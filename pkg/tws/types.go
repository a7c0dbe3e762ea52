package tws

import (
	"ccengine/pkg/level"
	"ccengine/pkg/tile"
)

// Solution is one level's recorded attempt.
type Solution struct {
	LevelNumber uint16
	Password    [4]byte

	// Attempted reports whether this record carries an actual input
	// stream. A bare "attempted, no solution" record sets this false and
	// leaves every other field but LevelNumber/Password zero.
	Attempted bool

	OtherFlags     byte
	SlideDirection tile.Direction
	StepValue      uint8
	PRNGSeed       uint32
	NumTicks       uint32

	// Inputs holds one entry per tick, DirNil where Chip made no move.
	Inputs []tile.Direction
}

// Set is a parsed TWS archive: the ruleset it was recorded against, plus
// every level's solution in ascending level-number order.
type Set struct {
	Ruleset     level.RulesetID
	SetName     string
	RecentLevel uint16
	Solutions   []Solution
}
