package redis

type PlayerStatus string

const (
	StatusIdle   PlayerStatus = "idle"
	StatusInGame PlayerStatus = "inGame"
)

// LobbyEntry advertises a player's availability for one game type.
// Key format: "lobby:{gameType}", hash field = username.
// The entry is removed on explicit leave or by the player's disconnect hook.
type LobbyEntry struct {
	Username   string       `json:"username"`
	Icon       int          `json:"icon"`
	Level      int          `json:"level"`
	Status     PlayerStatus `json:"status"`
	LastActive int64        `json:"last_active"` // Unix timestamp
}
