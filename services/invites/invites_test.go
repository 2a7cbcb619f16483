package invites

import (
	redis_models "TuneDuel/models/redis"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	invites map[string]*redis_models.Invite
}

func newFakeStore() *fakeStore {
	return &fakeStore{invites: make(map[string]*redis_models.Invite)}
}

func (s *fakeStore) key(recipient, sender string) string {
	return recipient + "|" + sender
}

func (s *fakeStore) GetInvite(recipient string, sender string) (*redis_models.Invite, error) {
	invite, ok := s.invites[s.key(recipient, sender)]
	if !ok {
		return nil, nil
	}
	copied := *invite
	return &copied, nil
}

func (s *fakeStore) SaveInvite(recipient string, invite *redis_models.Invite) error {
	copied := *invite
	s.invites[s.key(recipient, invite.Sender)] = &copied
	return nil
}

func (s *fakeStore) DeleteInvite(recipient string, sender string) error {
	delete(s.invites, s.key(recipient, sender))
	return nil
}

func pendingInvite(sender string) *redis_models.Invite {
	return &redis_models.Invite{
		Sender:     sender,
		SenderName: sender,
		GameType:   "quiz",
		Status:     redis_models.InviteStatusPending,
		SentAt:     time.Now().Unix(),
	}
}

func TestAcceptAttachesGameID(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.SaveInvite("rosa", pendingInvite("samir")))

	invite, err := Accept(store, "rosa", "samir", "game-42")
	require.NoError(t, err)
	assert.Equal(t, redis_models.InviteStatusAccepted, invite.Status)
	assert.Equal(t, "game-42", invite.GameID)

	// The stored record carries the transition too
	stored, err := store.GetInvite("rosa", "samir")
	require.NoError(t, err)
	assert.Equal(t, redis_models.InviteStatusAccepted, stored.Status)
	assert.Equal(t, "game-42", stored.GameID)
}

func TestAcceptTransitionsExactlyOnce(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.SaveInvite("rosa", pendingInvite("samir")))

	_, err := Accept(store, "rosa", "samir", "game-42")
	require.NoError(t, err)

	// Already accepted: the second accept must not re-transition or
	// overwrite the session id
	_, err = Accept(store, "rosa", "samir", "game-99")
	assert.ErrorIs(t, err, ErrNotPending)

	stored, err := store.GetInvite("rosa", "samir")
	require.NoError(t, err)
	assert.Equal(t, "game-42", stored.GameID)
}

func TestAcceptMissingInvite(t *testing.T) {
	store := newFakeStore()

	_, err := Accept(store, "rosa", "samir", "game-42")
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestConsumeRequiresAcceptedStatus(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.SaveInvite("rosa", pendingInvite("samir")))

	// Still pending: nothing to observe yet
	_, err := Consume(store, "rosa", "samir")
	assert.ErrorIs(t, err, ErrNotAccepted)

	// The failed consume must not have destroyed the pending invite
	stored, err := store.GetInvite("rosa", "samir")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, redis_models.InviteStatusPending, stored.Status)
}

func TestConsumeDeletesRecord(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.SaveInvite("rosa", pendingInvite("samir")))

	_, err := Accept(store, "rosa", "samir", "game-42")
	require.NoError(t, err)

	gameID, err := Consume(store, "rosa", "samir")
	require.NoError(t, err)
	assert.Equal(t, "game-42", gameID)

	stored, err := store.GetInvite("rosa", "samir")
	require.NoError(t, err)
	assert.Nil(t, stored)

	// Single-shot: the record is gone, a second observation fails
	_, err = Consume(store, "rosa", "samir")
	assert.ErrorIs(t, err, ErrNotAccepted)
}

func TestFullLifecycle(t *testing.T) {
	store := newFakeStore()
	require.NoError(t, store.SaveInvite("rosa", pendingInvite("samir")))

	_, err := Accept(store, "rosa", "samir", "game-42")
	require.NoError(t, err)

	gameID, err := Consume(store, "rosa", "samir")
	require.NoError(t, err)
	assert.Equal(t, "game-42", gameID)

	// pending -> accepted -> deleted, nothing left behind
	stored, err := store.GetInvite("rosa", "samir")
	require.NoError(t, err)
	assert.Nil(t, stored)
}
