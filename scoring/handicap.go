package scoring

import "math"

// StrokesReceived returns how many handicap strokes a player receives on the
// hole with the given stroke index (1 = hardest), for a round of holesInRound
// holes. Every hole receives handicap/holesInRound strokes; the remainder is
// distributed one stroke at a time starting from the hardest hole. This holds
// for handicaps above holesInRound: a 22 handicap on 18 holes gets one stroke
// everywhere and a second on the four hardest holes.
//
// Zero or negative handicaps receive no strokes.
func StrokesReceived(handicap float64, strokeIndex, holesInRound int) int {
	if holesInRound <= 0 {
		holesInRound = 18
	}
	hc := int(math.Round(handicap))
	if hc <= 0 {
		return 0
	}
	strokes := hc / holesInRound
	if strokeIndex <= hc%holesInRound {
		strokes++
	}
	return strokes
}
