package domain

import "fmt"

// Level is a depth of the CATH hierarchy.
type Level int

const (
	// FirstLevel is the class, for example "3".
	FirstLevel Level = iota

	// TwoLevels is class and architecture, for example "3.40".
	TwoLevels

	// ThreeLevels is class, architecture and topology, for example
	// "3.40.50".
	ThreeLevels

	// FullCode is the complete label as assigned.
	FullCode
)

// Levels lists hierarchy levels from the shallowest to the full code.
var Levels = [4]Level{FirstLevel, TwoLevels, ThreeLevels, FullCode}

var levelNames = [4]string{
	"domain.first.level",
	"domain.two.levels",
	"domain.three.levels",
	"domain",
}

// String returns the column name used for the level in output tables.
func (l Level) String() string {
	if l < FirstLevel || l > FullCode {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel converts a column name back to a Level.
func ParseLevel(s string) (Level, error) {
	for i, v := range levelNames {
		if v == s {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown domain level %q", s)
}
