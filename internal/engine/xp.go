package engine

// XPPerLevel is the flat amount of XP between two consecutive levels.
const XPPerLevel = 100

// LevelForXP returns floor(xp/100)+1. Negative XP is treated as zero.
func LevelForXP(xp int) int {
	if xp <= 0 {
		return 1
	}
	return xp/XPPerLevel + 1
}

// XPRequiredForLevel returns the total XP threshold of the given level.
// Level 1 requires 0 XP.
func XPRequiredForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * XPPerLevel
}

// LevelProgress returns XP earned inside the current level and the span of the level.
func LevelProgress(xp int) (into int, span int) {
	if xp < 0 {
		xp = 0
	}
	return xp % XPPerLevel, XPPerLevel
}
