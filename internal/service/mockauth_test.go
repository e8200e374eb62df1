package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/and161185/medhub/internal/errs"
	"github.com/and161185/medhub/internal/store"
)

func TestMockAuthenticator_ReturnsDemoUserBoundToEmail(t *testing.T) {
	t.Parallel()
	m := NewMockAuthenticator(0, []byte("k"), time.Hour)

	sess, err := m.Authenticate(context.Background(), "sarah@example.com", "anything")
	require.NoError(t, err)
	require.Equal(t, "sarah@example.com", sess.User.Email)
	require.Equal(t, "Sarah Johnson", sess.User.Name)
	require.Equal(t, []string{"Penicillin", "Peanuts"}, sess.User.Allergies)

	sub, err := ParseAccessToken(sess.AccessToken, []byte("k"))
	require.NoError(t, err)
	require.Equal(t, "1", sub)
}

func TestMockAuthenticator_RejectsEmptyCredentials(t *testing.T) {
	t.Parallel()
	m := NewMockAuthenticator(0, []byte("k"), time.Hour)

	_, err := m.Authenticate(context.Background(), "", "pw")
	require.Error(t, err)
	_, err = m.Authenticate(context.Background(), "a@b.io", "")
	require.Error(t, err)
}

func TestMockAuthenticator_DelayHonoursContext(t *testing.T) {
	t.Parallel()
	m := NewMockAuthenticator(time.Hour, []byte("k"), time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := m.Authenticate(ctx, "a@b.io", "pw")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMockAuthenticator_DelaysBeforeResolving(t *testing.T) {
	t.Parallel()
	m := NewMockAuthenticator(20*time.Millisecond, []byte("k"), time.Hour)

	start := time.Now()
	_, err := m.Authenticate(context.Background(), "a@b.io", "pw")
	require.NoError(t, err)
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestMockAuthenticator_DrivesStoreLogin(t *testing.T) {
	t.Parallel()
	s := store.New(NewMockAuthenticator(5*time.Millisecond, []byte("k"), time.Hour), zaptest.NewLogger(t))
	defer s.Close()

	require.NoError(t, s.Login(context.Background(), "sarah@example.com", "pw"))
	st := s.Snapshot()
	require.True(t, st.IsAuthenticated)
	require.Equal(t, "sarah@example.com", st.User.Email)
	require.NotEmpty(t, st.AccessToken)
}

func TestMockAuthenticator_AcceptsAnyNonEmptyIdentifier(t *testing.T) {
	t.Parallel()
	s := store.New(NewMockAuthenticator(10*time.Millisecond, []byte("k"), time.Hour), zaptest.NewLogger(t))
	defer s.Close()

	require.NoError(t, s.Login(context.Background(), "sarah", "pw"))
	st := s.Snapshot()
	require.True(t, st.IsAuthenticated)
	require.Equal(t, "sarah", st.User.Email)
	require.Equal(t, "Sarah Johnson", st.User.Name)
}

func TestParseAccessToken_Rejects(t *testing.T) {
	t.Parallel()

	ti := tokenIssuer{signKey: []byte("k"), ttl: time.Minute, now: time.Now}
	tok, _, err := ti.issue("u1")
	require.NoError(t, err)

	_, err = ParseAccessToken(tok, []byte("other"))
	require.True(t, errors.Is(err, errs.ErrUnauthorized))

	expired := tokenIssuer{signKey: []byte("k"), ttl: time.Minute, now: func() time.Time { return time.Now().Add(-time.Hour) }}
	old, _, err := expired.issue("u1")
	require.NoError(t, err)
	_, err = ParseAccessToken(old, []byte("k"))
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	_, err = ParseAccessToken("garbage", []byte("k"))
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	empty, _, err := ti.issue("")
	require.NoError(t, err)
	_, err = ParseAccessToken(empty, []byte("k"))
	require.ErrorIs(t, err, errs.ErrUnauthorized)
}
