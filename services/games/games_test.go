package games

import (
	game_constants "TuneDuel/constants/game"
	redis_models "TuneDuel/models/redis"
	"TuneDuel/services/pool"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sequenceContent() *pool.GameSequence {
	return &pool.GameSequence{
		Reference: redis_models.Track{TrackID: 1, ReleaseYear: 1990},
		Sequence: []redis_models.Track{
			{TrackID: 2, ReleaseYear: 1995},
			{TrackID: 3, ReleaseYear: 1995}, // tie with previous
			{TrackID: 4, ReleaseYear: 1980},
		},
	}
}

func TestHigherLowerScoringAndTie(t *testing.T) {
	e := NewHigherLowerEngine(sequenceContent())

	correct, done := e.Guess("higher") // 1990 -> 1995
	assert.True(t, correct)
	assert.False(t, done)

	correct, _ = e.Guess("lower") // 1995 -> 1995, tie counts either way
	assert.True(t, correct)

	correct, done = e.Guess("higher") // 1995 -> 1980, wrong
	assert.False(t, correct)
	assert.True(t, done) // sequence exhausted

	assert.Equal(t, 2*game_constants.SequenceGuessPoints, e.Score)
	assert.Equal(t, game_constants.StartingLives-1, e.Lives)
	assert.Equal(t, redis_models.PlayerStatusFinished, e.Status())
}

func TestHigherLowerRunsOutOfLives(t *testing.T) {
	content := &pool.GameSequence{
		Reference: redis_models.Track{TrackID: 1, ReleaseYear: 2000},
		Sequence: []redis_models.Track{
			{TrackID: 2, ReleaseYear: 1990},
			{TrackID: 3, ReleaseYear: 1980},
			{TrackID: 4, ReleaseYear: 1970},
			{TrackID: 5, ReleaseYear: 1960},
		},
	}
	e := NewHigherLowerEngine(content)

	for i := 0; i < game_constants.StartingLives; i++ {
		assert.False(t, e.Finished())
		correct, _ := e.Guess("higher") // every year goes down
		assert.False(t, correct)
	}

	assert.True(t, e.Finished())
	assert.Equal(t, 0, e.Lives)
	assert.Equal(t, redis_models.PlayerStatusGameOver, e.Status())
}

func TestHigherLowerRoundIndexAdvances(t *testing.T) {
	e := NewHigherLowerEngine(sequenceContent())
	assert.Equal(t, 0, e.Round())
	e.Guess("higher")
	assert.Equal(t, 1, e.Round())
}

func TestQuizEngine(t *testing.T) {
	questions := []redis_models.TriviaQuestion{
		{Correct: redis_models.Track{TrackID: 10}},
		{Correct: redis_models.Track{TrackID: 20}},
	}
	e := NewQuizEngine(questions)

	correct, done := e.Answer(10)
	assert.True(t, correct)
	assert.False(t, done)
	assert.Equal(t, redis_models.PlayerStatusPlaying, e.Status())

	correct, done = e.Answer(99)
	assert.False(t, correct)
	assert.True(t, done)

	assert.Equal(t, game_constants.QuizCorrectPoints, e.Score)
	assert.Equal(t, 1, e.Correct)
	assert.Equal(t, redis_models.PlayerStatusFinished, e.Status())
}

func TestMatchingEngine(t *testing.T) {
	tracks := []redis_models.Track{
		{TrackID: 1}, {TrackID: 2}, {TrackID: 3},
	}
	e := NewMatchingEngine(tracks, 2)
	assert.Len(t, e.Cards, 4)

	// Find the two positions of the first pair
	positions := map[int64][]int{}
	for i, card := range e.Cards {
		positions[card.TrackID] = append(positions[card.TrackID], i)
	}
	assert.Len(t, positions, 2)

	for _, pair := range positions {
		matched, _ := e.Flip(pair[0], pair[1])
		assert.True(t, matched)
	}
	assert.True(t, e.Finished())
	assert.Equal(t, 2*game_constants.MatchingPairPoints, e.Score)
	assert.Equal(t, redis_models.PlayerStatusFinished, e.Status())
}

func TestMatchingEngineRejectsBadFlips(t *testing.T) {
	e := NewMatchingEngine([]redis_models.Track{{TrackID: 1}, {TrackID: 2}}, 2)

	matched, _ := e.Flip(0, 0)
	assert.False(t, matched)
	matched, _ = e.Flip(-1, 3)
	assert.False(t, matched)
	assert.Equal(t, 0, e.Attempts)
}

func TestRhythmEngineJudgments(t *testing.T) {
	// 120 bpm -> one beat every 500ms
	e := NewRhythmEngine(120, 0)

	judgment, points := e.Tap(500) // exactly on beat 1
	assert.Equal(t, TapPerfect, judgment)
	assert.Equal(t, game_constants.RhythmPerfectPoints+2, points)
	assert.Equal(t, 1, e.Combo)

	judgment, points = e.Tap(1100) // 100ms late on beat 2
	assert.Equal(t, TapGood, judgment)
	assert.Equal(t, game_constants.RhythmGoodPoints+4, points)
	assert.Equal(t, 2, e.Combo)

	judgment, points = e.Tap(1750) // dead between beats
	assert.Equal(t, TapMiss, judgment)
	assert.Equal(t, 0, points)
	assert.Equal(t, 0, e.Combo)

	assert.Equal(t, game_constants.RhythmPerfectPoints+2+game_constants.RhythmGoodPoints+4, e.Score)
}

func TestRhythmEngineTapsBeforeSongStart(t *testing.T) {
	// 120 bpm, song starts at 10s
	e := NewRhythmEngine(120, 10_000)

	// 20ms early on the first beat still counts as perfect
	judgment, _ := e.Tap(9_980)
	assert.Equal(t, TapPerfect, judgment)

	// Way before the song: judged against beat zero, far outside any window
	judgment, points := e.Tap(9_300)
	assert.Equal(t, TapMiss, judgment)
	assert.Equal(t, 0, points)
	assert.Equal(t, 0, e.Combo)
}
