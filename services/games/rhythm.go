package games

import (
	game_constants "TuneDuel/constants/game"
	"math"
)

type TapJudgment string

const (
	TapPerfect TapJudgment = "perfect"
	TapGood    TapJudgment = "good"
	TapMiss    TapJudgment = "miss"
)

// RhythmEngine scores one player's taps against the beat grid derived from
// the session's bpm. Rhythm duels have no rounds: each side just streams its
// cumulative score through its own session subtree, and the opponent's score
// is displayed but never contested.
type RhythmEngine struct {
	beatIntervalMs float64
	startMs        int64

	Score int
	Combo int
}

func NewRhythmEngine(bpm int, startMs int64) *RhythmEngine {
	return &RhythmEngine{
		beatIntervalMs: 60000.0 / float64(bpm),
		startMs:        startMs,
	}
}

// Tap judges a tap at atMs (Unix millis) against the nearest beat. Hits
// extend the combo, which feeds back into the points; a miss resets it.
func (e *RhythmEngine) Tap(atMs int64) (TapJudgment, int) {
	offset := float64((atMs - e.startMs)) // millis since song start
	position := offset / e.beatIntervalMs
	// Taps before the first beat are judged against beat zero
	nearest := math.Round(position)
	if nearest < 0 {
		nearest = 0
	}
	distance := position - nearest
	if distance < 0 {
		distance = -distance
	}
	distanceMs := distance * e.beatIntervalMs

	var judgment TapJudgment
	var base int
	switch {
	case distanceMs <= game_constants.RhythmPerfectWindowMs:
		judgment, base = TapPerfect, game_constants.RhythmPerfectPoints
	case distanceMs <= game_constants.RhythmGoodWindowMs:
		judgment, base = TapGood, game_constants.RhythmGoodPoints
	default:
		e.Combo = 0
		return TapMiss, 0
	}

	e.Combo++
	points := base + 2*e.Combo
	e.Score += points
	return judgment, points
}
