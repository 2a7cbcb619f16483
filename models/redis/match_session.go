package redis

type SessionPlayerStatus string

const (
	PlayerStatusPlaying  SessionPlayerStatus = "playing"
	PlayerStatusFinished SessionPlayerStatus = "finished"
	PlayerStatusGameOver SessionPlayerStatus = "gameover"
)

// GamePayload is the game-type-specific content of a session. Exactly one of
// the groups is populated: Sequence (+Reference) for higher/lower and
// matching, Questions for quiz, BPM+SongURL for rhythm battles.
type GamePayload struct {
	Reference *Track           `json:"reference,omitempty"`
	Sequence  []Track          `json:"sequence,omitempty"`
	Questions []TriviaQuestion `json:"questions,omitempty"`
	BPM       int              `json:"bpm,omitempty"`
	SongURL   string           `json:"song_url,omitempty"`
}

// PlayerState is the per-player subtree of a session.
// Key format: "session:{id}:player:{username}".
// Each client writes only its own subtree; the opponent's state is read via
// the shared session subscription, never written.
type PlayerState struct {
	Username string              `json:"username"`
	Name     string              `json:"name"`
	Score    int                 `json:"score"`
	Lives    int                 `json:"lives"`
	Status   SessionPlayerStatus `json:"status"`
}

// MatchSession is the immutable-in-structure shared record of one duel.
// Key format: "session:{id}". Created exactly once by the invite accepter
// with both players seeded; Players lists the two usernames whose state
// subtrees exist under the session.
type MatchSession struct {
	ID        string      `json:"id"`
	GameType  string      `json:"game_type"`
	Status    string      `json:"status"`
	CreatedAt int64       `json:"created_at"` // Unix timestamp
	Payload   GamePayload `json:"payload"`
	Players   [2]string   `json:"players"`
}

// RoundMove is one player's move for one round of a higher/lower duel.
// Key format: "session:{id}:round:{n}:{username}". Write-once: the first
// write wins and later writes for the same key are rejected.
type RoundMove struct {
	Guess string `json:"guess"` // "higher" | "lower"
	At    int64  `json:"at"`    // Unix millis
}

// Taunt is a single-consumer message pushed under a session.
// Key format: "session:{id}:taunts:{target}", a list consumed by the
// recipient's listener (at-most-once).
type Taunt struct {
	From string `json:"from"`
	Msg  string `json:"msg"`
	At   int64  `json:"at"` // Unix millis
}
