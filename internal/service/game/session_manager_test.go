package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManagerRegistry(t *testing.T) {
	conn := newFakeConn()
	reporter := newFakeReporter()
	sm := NewSessionManager(conn, reporter)

	session := sm.CreateSession(
		Participant{UserID: 10, Username: "carol", Rating: 1000},
		Participant{UserID: 11, Username: "dave", Rating: 1000},
	)
	t.Cleanup(func() { session.HandleDisconnect(10) })

	assert.Equal(t, 1, sm.ActiveSessions())

	byGame, ok := sm.GetSessionByGameID(session.GameID)
	require.True(t, ok)
	assert.Same(t, session, byGame)

	byUser, ok := sm.GetSessionByUserID(11)
	require.True(t, ok)
	assert.Same(t, session, byUser)

	_, ok = sm.GetSessionByUserID(99)
	assert.False(t, ok)
}

func TestRemoveSessionClearsBothMappings(t *testing.T) {
	conn := newFakeConn()
	reporter := newFakeReporter()
	sm := NewSessionManager(conn, reporter)

	session := sm.CreateSession(
		Participant{UserID: 10, Username: "carol", Rating: 1000},
		Participant{UserID: 11, Username: "dave", Rating: 1000},
	)
	t.Cleanup(func() { session.HandleDisconnect(10) })

	sm.RemoveSession(session.GameID)

	assert.Equal(t, 0, sm.ActiveSessions())
	_, ok := sm.GetSessionByUserID(10)
	assert.False(t, ok)
	_, ok = sm.GetSessionByUserID(11)
	assert.False(t, ok)
	_, ok = sm.GetSessionByGameID(session.GameID)
	assert.False(t, ok)

	// Removing twice is harmless.
	sm.RemoveSession(session.GameID)
	assert.Equal(t, 0, sm.ActiveSessions())
}
