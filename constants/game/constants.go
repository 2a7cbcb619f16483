package game_constants

// Game types, as sent by clients when joining a lobby or sending an invite
const (
	GameTypeMatching    = "matching"
	GameTypeRhythm      = "rhythm"
	GameTypeHigherLower = "higherlower"
	GameTypeQuiz        = "quiz"
)

const StartingLives = 3
const MaxSequenceLength = 20

// Minimum unique tracks required before a game can be generated
const MinSequencePool = 5
const MinTriviaPool = 4
const TriviaOptionsPerQuestion = 4

// Respect adjustment applied after a decided duel: winner +RespectDelta,
// loser -RespectDelta, both the public ranking and the profile mirror.
const RespectDelta = 34

// Rhythm timing windows, in milliseconds around the expected beat
const (
	RhythmPerfectWindowMs = 60
	RhythmGoodWindowMs    = 150

	RhythmPerfectPoints = 100
	RhythmGoodPoints    = 50
)

const SequenceGuessPoints = 10
const QuizCorrectPoints = 25
const MatchingPairPoints = 15
