package games

import (
	game_constants "TuneDuel/constants/game"
	redis_models "TuneDuel/models/redis"
	"math/rand"
)

// Card is one face-down card in the matching grid. Two cards share a
// TrackID: one shows the artwork, the other the title.
type Card struct {
	TrackID int64
	Face    string // "artwork" | "title"
	Matched bool
}

// MatchingEngine drives one player's card-flip board.
type MatchingEngine struct {
	Cards    []Card
	Attempts int
	Pairs    int
	found    int

	Score int
}

// NewMatchingEngine lays out pairs cards from the (already deduplicated)
// track list, two cards per track, shuffled.
func NewMatchingEngine(tracks []redis_models.Track, pairs int) *MatchingEngine {
	if pairs > len(tracks) {
		pairs = len(tracks)
	}

	cards := make([]Card, 0, pairs*2)
	for _, track := range tracks[:pairs] {
		cards = append(cards,
			Card{TrackID: track.TrackID, Face: "artwork"},
			Card{TrackID: track.TrackID, Face: "title"},
		)
	}
	rand.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	return &MatchingEngine{Cards: cards, Pairs: pairs}
}

// Flip attempts to match the two cards at positions i and j.
func (e *MatchingEngine) Flip(i, j int) (matched bool, done bool) {
	if i == j || i < 0 || j < 0 || i >= len(e.Cards) || j >= len(e.Cards) {
		return false, e.Finished()
	}
	if e.Cards[i].Matched || e.Cards[j].Matched {
		return false, e.Finished()
	}

	e.Attempts++
	if e.Cards[i].TrackID == e.Cards[j].TrackID {
		e.Cards[i].Matched = true
		e.Cards[j].Matched = true
		e.found++
		e.Score += game_constants.MatchingPairPoints
		return true, e.Finished()
	}
	return false, false
}

func (e *MatchingEngine) Finished() bool {
	return e.found >= e.Pairs
}

func (e *MatchingEngine) Status() redis_models.SessionPlayerStatus {
	if e.Finished() {
		return redis_models.PlayerStatusFinished
	}
	return redis_models.PlayerStatusPlaying
}
