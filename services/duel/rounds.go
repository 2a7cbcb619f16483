package duel

import (
	redis_models "TuneDuel/models/redis"
	"TuneDuel/services/pool"
)

// RoundResolved reports whether a round has both players' moves. A round
// with only one move present never resolves; clients keep waiting on the
// next session update.
func RoundResolved(moves map[string]redis_models.RoundMove, players [2]string) bool {
	for _, username := range players {
		if _, ok := moves[username]; !ok {
			return false
		}
	}
	return true
}

// ScoreRound evaluates a resolved round: for each player, whether their
// guess about next relative to previous was correct (equal release years
// count as correct either way). Each client calls this independently once
// RoundResolved is true and then advances its local round index; there is no
// cross-client advance acknowledgement, so indices may transiently differ by
// one until the slower side observes both moves.
func ScoreRound(previous, next redis_models.Track, moves map[string]redis_models.RoundMove) map[string]bool {
	correct := make(map[string]bool, len(moves))
	for username, move := range moves {
		correct[username] = pool.GuessCorrect(previous, next, move.Guess)
	}
	return correct
}
