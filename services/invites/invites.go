package invites

import (
	redis_models "TuneDuel/models/redis"
	"errors"
)

var (
	ErrNotPending  = errors.New("no pending invite to accept")
	ErrNotAccepted = errors.New("no accepted invite to consume")
)

// Store is the mailbox the invite lifecycle runs against. The Redis client
// implements it; tests use an in-memory fake.
type Store interface {
	GetInvite(recipient string, sender string) (*redis_models.Invite, error)
	SaveInvite(recipient string, invite *redis_models.Invite) error
	DeleteInvite(recipient string, sender string) error
}

// Accept flips a pending invite to accepted, attaching the session id in the
// same write. Only the recipient performs this transition, and only from
// pending: accepting an already-accepted (or missing) invite fails, so the
// record makes exactly one pending -> accepted transition in its lifetime.
func Accept(store Store, recipient string, sender string, gameID string) (*redis_models.Invite, error) {
	invite, err := store.GetInvite(recipient, sender)
	if err != nil {
		return nil, err
	}
	if invite == nil || invite.Status != redis_models.InviteStatusPending {
		return nil, ErrNotPending
	}

	invite.Status = redis_models.InviteStatusAccepted
	invite.GameID = gameID
	if err := store.SaveInvite(recipient, invite); err != nil {
		return nil, err
	}
	return invite, nil
}

// Consume is the sender observing the acceptance: it requires the accepted
// status, deletes the record, and hands back the attached session id. The
// deletion makes the observation single-shot; a second consume fails.
func Consume(store Store, recipient string, sender string) (string, error) {
	invite, err := store.GetInvite(recipient, sender)
	if err != nil {
		return "", err
	}
	if invite == nil || invite.Status != redis_models.InviteStatusAccepted {
		return "", ErrNotAccepted
	}

	if err := store.DeleteInvite(recipient, sender); err != nil {
		return "", err
	}
	return invite.GameID, nil
}
