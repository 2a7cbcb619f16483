package pool

import (
	game_constants "TuneDuel/constants/game"
	redis_models "TuneDuel/models/redis"
	"errors"
	"math/rand"
	"sort"
)

// ErrInsufficientPool is returned when the deduplicated track list is too
// small to generate the requested content. Callers surface it as a
// "try another category" condition; no game is created.
var ErrInsufficientPool = errors.New("not enough unique tracks in pool")

// GameSequence is the higher/lower content: one reference track plus an
// ordered sequence of follow-ups to guess against.
type GameSequence struct {
	Reference redis_models.Track
	Sequence  []redis_models.Track
}

// Dedupe collapses a raw track list to one entry per unique track id,
// keeping the first occurrence. Always applied before any sampling.
func Dedupe(tracks []redis_models.Track) []redis_models.Track {
	seen := make(map[int64]bool, len(tracks))
	unique := make([]redis_models.Track, 0, len(tracks))
	for _, track := range tracks {
		if seen[track.TrackID] {
			continue
		}
		seen[track.TrackID] = true
		unique = append(unique, track)
	}
	return unique
}

// Shuffle returns a shuffled copy using a random comparator. Not perfectly
// uniform, which is fine for casual-game fairness; kept as-is on purpose.
func Shuffle(tracks []redis_models.Track) []redis_models.Track {
	shuffled := make([]redis_models.Track, len(tracks))
	copy(shuffled, tracks)
	sort.Slice(shuffled, func(i, j int) bool {
		return rand.Float64() < 0.5
	})
	return shuffled
}

// GenerateGameSequence builds the higher/lower content from a raw track list.
// Requires at least MinSequencePool unique tracks; the result is one
// reference track plus up to MaxSequenceLength shuffled follow-ups, all
// distinct from the reference and from each other.
func GenerateGameSequence(tracks []redis_models.Track) (*GameSequence, error) {
	unique := Dedupe(tracks)
	if len(unique) < game_constants.MinSequencePool {
		return nil, ErrInsufficientPool
	}

	shuffled := Shuffle(unique)
	sequence := shuffled[1:]
	if len(sequence) > game_constants.MaxSequenceLength {
		sequence = sequence[:game_constants.MaxSequenceLength]
	}

	return &GameSequence{
		Reference: shuffled[0],
		Sequence:  sequence,
	}, nil
}

// GenerateTriviaQuestions builds up to count multiple-choice questions.
// Requires at least MinTriviaPool unique tracks. Each question takes one
// correct track and three distractors from the remaining pool, so no option
// repeats within a question; generation stops early when fewer than three
// distractors remain.
func GenerateTriviaQuestions(tracks []redis_models.Track, count int) ([]redis_models.TriviaQuestion, error) {
	unique := Dedupe(tracks)
	if len(unique) < game_constants.MinTriviaPool {
		return nil, ErrInsufficientPool
	}

	shuffled := Shuffle(unique)
	distractorsPerQuestion := game_constants.TriviaOptionsPerQuestion - 1

	questions := make([]redis_models.TriviaQuestion, 0, count)
	for i := 0; len(questions) < count; i += game_constants.TriviaOptionsPerQuestion {
		if len(shuffled)-i-1 < distractorsPerQuestion {
			break
		}
		correct := shuffled[i]
		options := make([]redis_models.Track, 0, game_constants.TriviaOptionsPerQuestion)
		options = append(options, correct)
		options = append(options, shuffled[i+1:i+1+distractorsPerQuestion]...)

		questions = append(questions, redis_models.TriviaQuestion{
			Correct: correct,
			Options: Shuffle(options),
		})
	}
	return questions, nil
}

// GuessCorrect applies the adjacent-year comparison policy. Tracks released
// in the same year satisfy both an "older" and a "newer" guess.
func GuessCorrect(previous, next redis_models.Track, guess string) bool {
	if next.ReleaseYear == previous.ReleaseYear {
		return true
	}
	if guess == "higher" || guess == "newer" {
		return next.ReleaseYear > previous.ReleaseYear
	}
	return next.ReleaseYear < previous.ReleaseYear
}
