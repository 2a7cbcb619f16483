package games

import (
	game_constants "TuneDuel/constants/game"
	redis_models "TuneDuel/models/redis"
)

// QuizEngine walks one player through a set of trivia questions.
type QuizEngine struct {
	questions []redis_models.TriviaQuestion
	index     int

	Score   int
	Correct int
}

func NewQuizEngine(questions []redis_models.TriviaQuestion) *QuizEngine {
	return &QuizEngine{questions: questions}
}

// Current returns the question currently presented. Only valid while !Finished().
func (e *QuizEngine) Current() redis_models.TriviaQuestion {
	return e.questions[e.index]
}

// Answer consumes the current question with the chosen option's track id.
func (e *QuizEngine) Answer(trackID int64) (correct bool, done bool) {
	if e.Finished() {
		return false, true
	}

	correct = e.questions[e.index].Correct.TrackID == trackID
	if correct {
		e.Score += game_constants.QuizCorrectPoints
		e.Correct++
	}
	e.index++
	return correct, e.Finished()
}

func (e *QuizEngine) Finished() bool {
	return e.index >= len(e.questions)
}

func (e *QuizEngine) Status() redis_models.SessionPlayerStatus {
	if e.Finished() {
		return redis_models.PlayerStatusFinished
	}
	return redis_models.PlayerStatusPlaying
}
