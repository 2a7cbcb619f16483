package duel

import (
	game_constants "TuneDuel/constants/game"
)

// RespectLedger is the store-side half of respect resolution: one atomic
// multi-path write moving the public ranking and the private profile mirror
// together. Implemented by services/redis.RedisClient.
type RespectLedger interface {
	AdjustRespect(winner string, loser string, delta int) error
}

// SessionReaper is the explicit deletion hook for finished or abandoned
// sessions. Nothing invokes it automatically during play; the sync manager
// calls it after results are persisted.
type SessionReaper interface {
	ReapSession(sessionID string) error
}

// ResolveRespectDuel applies the fixed-magnitude respect adjustment for a
// decided duel. Only the client that computed a win for itself triggers
// this; a draw performs no mutation at all. The call is additive, not
// idempotent: when both clients observe termination near-simultaneously and
// the winner's side fires twice, the credit doubles. That race is accepted
// because the magnitude is small and the alternative is a coordination
// round-trip the protocol deliberately avoids.
func ResolveRespectDuel(ledger RespectLedger, winner string, loser string) error {
	return ledger.AdjustRespect(winner, loser, game_constants.RespectDelta)
}
