package duel

import (
	game_constants "TuneDuel/constants/game"
	redis_models "TuneDuel/models/redis"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeLedger records every adjustment so tests can see additive behavior.
type fakeLedger struct {
	calls   int
	respect map[string]int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{respect: make(map[string]int)}
}

func (f *fakeLedger) AdjustRespect(winner string, loser string, delta int) error {
	f.calls++
	f.respect[winner] += delta
	f.respect[loser] -= delta
	return nil
}

func playing(username string, score, lives int) redis_models.PlayerState {
	return redis_models.PlayerState{
		Username: username,
		Name:     username,
		Score:    score,
		Lives:    lives,
		Status:   redis_models.PlayerStatusPlaying,
	}
}

func finished(username string, score int) redis_models.PlayerState {
	s := playing(username, score, game_constants.StartingLives)
	s.Status = redis_models.PlayerStatusFinished
	return s
}

func TestTerminalPredicate(t *testing.T) {
	// Not terminal: both alive and still playing
	assert.False(t, Terminal(playing("ana", 10, 2), playing("bea", 30, 1)))

	// Terminal: one player out of lives
	assert.True(t, Terminal(playing("ana", 10, 0), playing("bea", 30, 2)))
	assert.True(t, Terminal(playing("ana", 10, 2), playing("bea", 30, 0)))

	// Not terminal: only one player finished
	assert.False(t, Terminal(finished("ana", 10), playing("bea", 30, 2)))

	// Terminal: both finished
	assert.True(t, Terminal(finished("ana", 10), finished("bea", 30)))
}

func TestDeadPlayerLosesRegardlessOfScore(t *testing.T) {
	// A leads on score but has no lives left
	a := playing("ana", 500, 0)
	b := playing("bea", 20, 2)

	assert.True(t, Terminal(a, b))
	assert.Equal(t, ResultLoss, Outcome(a, b))
	assert.Equal(t, ResultWin, Outcome(b, a))
}

func TestScoreDecidesWhenBothFinish(t *testing.T) {
	a := finished("ana", 120)
	b := finished("bea", 90)

	assert.Equal(t, ResultWin, Outcome(a, b))
	assert.Equal(t, ResultLoss, Outcome(b, a))
}

func TestEqualScoresDrawAndNoRespectMutation(t *testing.T) {
	a := finished("ana", 100)
	b := finished("bea", 100)

	assert.True(t, Terminal(a, b))
	assert.Equal(t, ResultDraw, Outcome(a, b))
	assert.Equal(t, ResultDraw, Outcome(b, a))

	// Neither side computed a win, so neither calls the ledger. The handler
	// gates on Outcome == ResultWin; a draw must leave respect untouched.
	ledger := newFakeLedger()
	for _, pair := range [][2]redis_models.PlayerState{{a, b}, {b, a}} {
		if Outcome(pair[0], pair[1]) == ResultWin {
			assert.NoError(t, ResolveRespectDuel(ledger, pair[0].Username, pair[1].Username))
		}
	}
	assert.Equal(t, 0, ledger.calls)
	assert.Empty(t, ledger.respect)
}

func TestResolveRespectDuelMagnitude(t *testing.T) {
	ledger := newFakeLedger()

	assert.NoError(t, ResolveRespectDuel(ledger, "ana", "bea"))

	assert.Equal(t, 1, ledger.calls)
	assert.Equal(t, game_constants.RespectDelta, ledger.respect["ana"])
	assert.Equal(t, -game_constants.RespectDelta, ledger.respect["bea"])
}

// A duplicate resolution call, as produced when both clients observe the
// terminal predicate near-simultaneously, double-credits. That is the
// documented behavior: the adjustment is additive, not idempotent. This test
// pins it so a silent change to idempotent semantics is visible.
func TestDuplicateResolveRespectDuelIsAdditive(t *testing.T) {
	ledger := newFakeLedger()

	assert.NoError(t, ResolveRespectDuel(ledger, "ana", "bea"))
	assert.NoError(t, ResolveRespectDuel(ledger, "ana", "bea"))

	assert.Equal(t, 2, ledger.calls)
	assert.Equal(t, 2*game_constants.RespectDelta, ledger.respect["ana"])
	assert.Equal(t, -2*game_constants.RespectDelta, ledger.respect["bea"])
}

func TestRoundResolvesOnlyWithBothMoves(t *testing.T) {
	players := [2]string{"ana", "bea"}
	moves := map[string]redis_models.RoundMove{
		"ana": {Guess: "higher", At: 1},
	}

	assert.False(t, RoundResolved(moves, players))

	moves["bea"] = redis_models.RoundMove{Guess: "lower", At: 2}
	assert.True(t, RoundResolved(moves, players))
}

func TestScoreRoundAppliesTiePolicy(t *testing.T) {
	previous := redis_models.Track{TrackID: 1, ReleaseYear: 1991}
	next := redis_models.Track{TrackID: 2, ReleaseYear: 2001}

	moves := map[string]redis_models.RoundMove{
		"ana": {Guess: "higher"},
		"bea": {Guess: "lower"},
	}
	correct := ScoreRound(previous, next, moves)
	assert.True(t, correct["ana"])
	assert.False(t, correct["bea"])

	// Equal years: both guesses count as correct
	sameYear := redis_models.Track{TrackID: 3, ReleaseYear: 1991}
	correct = ScoreRound(previous, sameYear, moves)
	assert.True(t, correct["ana"])
	assert.True(t, correct["bea"])
}
