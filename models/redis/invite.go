package redis

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
)

// Invite is a duel proposal sitting in the recipient's mailbox.
// Key format: "inbox:{recipient}", hash field = sender username.
// Only one invite per sender->recipient pair exists at a time; sending again
// overwrites. Only the recipient flips Status to accepted, attaching GameID
// in the same write.
type Invite struct {
	Sender     string       `json:"sender"`
	SenderName string       `json:"sender_name"`
	GameType   string       `json:"game_type"`
	Category   string       `json:"category,omitempty"`
	Status     InviteStatus `json:"status"`
	GameID     string       `json:"game_id,omitempty"`
	SentAt     int64        `json:"sent_at"` // Unix timestamp
}
