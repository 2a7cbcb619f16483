package pool

import (
	redis_models "TuneDuel/models/redis"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeTracks(n int) []redis_models.Track {
	tracks := make([]redis_models.Track, 0, n)
	for i := 0; i < n; i++ {
		tracks = append(tracks, redis_models.Track{
			TrackID:     int64(i + 1),
			ArtistName:  fmt.Sprintf("artist %d", i+1),
			TrackName:   fmt.Sprintf("track %d", i+1),
			ReleaseYear: 1980 + i,
			PreviewURL:  "https://example.com/preview.m4a",
			ArtworkURL:  "https://example.com/art.jpg",
		})
	}
	return tracks
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	tracks := []redis_models.Track{
		{TrackID: 1, TrackName: "first"},
		{TrackID: 2, TrackName: "second"},
		{TrackID: 1, TrackName: "duplicate of first"},
		{TrackID: 3, TrackName: "third"},
		{TrackID: 2, TrackName: "duplicate of second"},
	}

	unique := Dedupe(tracks)

	assert.Len(t, unique, 3)
	assert.Equal(t, "first", unique[0].TrackName)
	assert.Equal(t, "second", unique[1].TrackName)
	assert.Equal(t, "third", unique[2].TrackName)
}

func TestDedupeExactlyOnePerIdentity(t *testing.T) {
	tracks := append(makeTracks(10), makeTracks(10)...)

	unique := Dedupe(tracks)

	assert.Len(t, unique, 10)
	seen := make(map[int64]bool)
	for _, track := range unique {
		assert.False(t, seen[track.TrackID], "track id %d repeated", track.TrackID)
		seen[track.TrackID] = true
	}
}

func TestGenerateGameSequenceRejectsSmallPool(t *testing.T) {
	// 8 raw entries but only 4 unique identities
	tracks := append(makeTracks(4), makeTracks(4)...)

	seq, err := GenerateGameSequence(tracks)

	assert.Nil(t, seq)
	assert.ErrorIs(t, err, ErrInsufficientPool)
}

func TestGenerateGameSequenceDistinctTracks(t *testing.T) {
	seq, err := GenerateGameSequence(makeTracks(30))
	assert.NoError(t, err)
	assert.NotNil(t, seq)

	// Capped at 20 follow-ups, all distinct from the reference and each other
	assert.LessOrEqual(t, len(seq.Sequence), 20)
	assert.GreaterOrEqual(t, len(seq.Sequence), 1)

	seen := map[int64]bool{seq.Reference.TrackID: true}
	for _, track := range seq.Sequence {
		assert.False(t, seen[track.TrackID], "track id %d repeated", track.TrackID)
		seen[track.TrackID] = true
	}
}

func TestGenerateGameSequenceSmallestAllowedPool(t *testing.T) {
	seq, err := GenerateGameSequence(makeTracks(5))
	assert.NoError(t, err)
	assert.Len(t, seq.Sequence, 4)
}

func TestGenerateTriviaQuestionsRejectsSmallPool(t *testing.T) {
	questions, err := GenerateTriviaQuestions(makeTracks(3), 5)
	assert.Nil(t, questions)
	assert.ErrorIs(t, err, ErrInsufficientPool)
}

func TestGenerateTriviaQuestionsNoDuplicateOptions(t *testing.T) {
	questions, err := GenerateTriviaQuestions(makeTracks(25), 6)
	assert.NoError(t, err)
	assert.NotEmpty(t, questions)

	for _, q := range questions {
		assert.Len(t, q.Options, 4, "every produced question has 3 distractors plus the correct track")
		seen := make(map[int64]bool)
		correctPresent := false
		for _, option := range q.Options {
			assert.False(t, seen[option.TrackID], "option %d repeated", option.TrackID)
			seen[option.TrackID] = true
			if option.TrackID == q.Correct.TrackID {
				correctPresent = true
			}
		}
		assert.True(t, correctPresent)
	}
}

func TestGenerateTriviaQuestionsStopsWhenDistractorsRunOut(t *testing.T) {
	// 6 unique tracks: one full question consumes 4, leaving 2, which is
	// fewer than the 3 distractors a second question needs.
	questions, err := GenerateTriviaQuestions(makeTracks(6), 10)
	assert.NoError(t, err)
	assert.Len(t, questions, 1)
}

func TestGenerateTriviaQuestionsHonorsCount(t *testing.T) {
	questions, err := GenerateTriviaQuestions(makeTracks(40), 3)
	assert.NoError(t, err)
	assert.Len(t, questions, 3)
}

func TestGuessCorrectTiePolicy(t *testing.T) {
	a := redis_models.Track{TrackID: 1, ReleaseYear: 1999}
	b := redis_models.Track{TrackID: 2, ReleaseYear: 1999}

	// Equal years satisfy either direction
	assert.True(t, GuessCorrect(a, b, "higher"))
	assert.True(t, GuessCorrect(a, b, "lower"))

	newer := redis_models.Track{TrackID: 3, ReleaseYear: 2005}
	assert.True(t, GuessCorrect(a, newer, "higher"))
	assert.False(t, GuessCorrect(a, newer, "lower"))
	assert.True(t, GuessCorrect(newer, a, "lower"))
	assert.False(t, GuessCorrect(newer, a, "higher"))
}
