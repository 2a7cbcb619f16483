package games

import (
	game_constants "TuneDuel/constants/game"
	redis_models "TuneDuel/models/redis"
	"TuneDuel/services/pool"
)

// HigherLowerEngine walks one player through a year-guessing sequence.
// It is purely local state; in a duel the surrounding handler mirrors Score,
// Lives and Finished into the player's session subtree after every guess.
type HigherLowerEngine struct {
	reference redis_models.Track
	sequence  []redis_models.Track
	index     int

	Score int
	Lives int
}

func NewHigherLowerEngine(content *pool.GameSequence) *HigherLowerEngine {
	return &HigherLowerEngine{
		reference: content.Reference,
		sequence:  content.Sequence,
		Lives:     game_constants.StartingLives,
	}
}

// Previous is the track the next guess is compared against: the reference
// for the first round, then the last revealed track.
func (e *HigherLowerEngine) Previous() redis_models.Track {
	if e.index == 0 {
		return e.reference
	}
	return e.sequence[e.index-1]
}

// Next is the track currently being guessed. Only valid while !Finished().
func (e *HigherLowerEngine) Next() redis_models.Track {
	return e.sequence[e.index]
}

// Guess consumes one round. Equal release years count as correct for either
// direction. Returns whether the guess was right and whether the run ended
// (sequence exhausted or lives gone).
func (e *HigherLowerEngine) Guess(direction string) (correct bool, done bool) {
	if e.Finished() {
		return false, true
	}

	correct = pool.GuessCorrect(e.Previous(), e.Next(), direction)
	if correct {
		e.Score += game_constants.SequenceGuessPoints
	} else {
		e.Lives--
	}
	e.index++
	return correct, e.Finished()
}

func (e *HigherLowerEngine) Finished() bool {
	return e.Lives <= 0 || e.index >= len(e.sequence)
}

// Round is the zero-based index of the round currently awaited.
func (e *HigherLowerEngine) Round() int {
	return e.index
}

// Status maps the engine state to the session player status.
func (e *HigherLowerEngine) Status() redis_models.SessionPlayerStatus {
	if e.Lives <= 0 {
		return redis_models.PlayerStatusGameOver
	}
	if e.Finished() {
		return redis_models.PlayerStatusFinished
	}
	return redis_models.PlayerStatusPlaying
}
