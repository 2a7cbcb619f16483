package duel

import (
	redis_models "TuneDuel/models/redis"
)

/**
 * Replicated duel resolution. Both clients run this same logic independently
 * against the shared MatchSession: there is no referee process. Each side
 * only ever writes its own player subtree and reads the whole session, so
 * agreement follows from evaluating the same predicate over the same data,
 * not from coordination.
 */

type Result string

const (
	ResultWin  Result = "win"
	ResultLoss Result = "loss"
	ResultDraw Result = "draw"
)

// Terminal is the termination predicate, evaluated by every client on every
// session update: the duel has ended once either player is out of lives, or
// both players have finished their run.
func Terminal(a, b redis_models.PlayerState) bool {
	if a.Lives <= 0 || b.Lives <= 0 {
		return true
	}
	return a.Status == redis_models.PlayerStatusFinished &&
		b.Status == redis_models.PlayerStatusFinished
}

// Outcome computes the duel result from self's perspective at predicate-true
// time. A player out of lives loses regardless of score; otherwise scores
// decide, with equal scores a draw.
func Outcome(self, opponent redis_models.PlayerState) Result {
	if self.Lives <= 0 && opponent.Lives > 0 {
		return ResultLoss
	}
	if opponent.Lives <= 0 && self.Lives > 0 {
		return ResultWin
	}
	switch {
	case self.Score > opponent.Score:
		return ResultWin
	case self.Score < opponent.Score:
		return ResultLoss
	default:
		return ResultDraw
	}
}
