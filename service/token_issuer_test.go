package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestIssueThenVerify(t *testing.T) {
	creds := &fakeCreds{}
	user := creds.addUser("fer@example.com", "fer1234")
	issuer := NewTokenIssuer(creds)

	token, seriesID, err := issuer.Issue(user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, seriesID)
	assert.NotEqual(t, token, seriesID)

	got, err := issuer.Verify("fer@example.com", token, seriesID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestVerifyIsCaseInsensitiveOnEmail(t *testing.T) {
	creds := &fakeCreds{}
	user := creds.addUser("fer@example.com", "fer1234")
	issuer := NewTokenIssuer(creds)

	token, seriesID, err := issuer.Issue(user.ID)
	require.NoError(t, err)

	got, err := issuer.Verify("Fer@Example.COM", token, seriesID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestVerifyRejectsAnySingleMismatch(t *testing.T) {
	creds := &fakeCreds{}
	user := creds.addUser("fer@example.com", "fer1234")
	issuer := NewTokenIssuer(creds)

	token, seriesID, err := issuer.Issue(user.ID)
	require.NoError(t, err)

	cases := []struct {
		name     string
		email    string
		token    string
		seriesID string
	}{
		{"wrong token", "fer@example.com", "bogus", seriesID},
		{"wrong series", "fer@example.com", token, "bogus"},
		{"unknown email", "nobody@example.com", token, seriesID},
		{"empty token", "fer@example.com", "", seriesID},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := issuer.Verify(tc.email, tc.token, tc.seriesID)
			assert.ErrorIs(t, err, ErrNotAuthenticated)
		})
	}
}

func TestVerifyNeverMutates(t *testing.T) {
	creds := &fakeCreds{}
	user := creds.addUser("fer@example.com", "fer1234")
	issuer := NewTokenIssuer(creds)

	token, seriesID, err := issuer.Issue(user.ID)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := issuer.Verify("fer@example.com", token, seriesID)
		require.NoError(t, err)
	}
	_, err = issuer.Verify("fer@example.com", "bogus", seriesID)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	assert.Len(t, creds.pairs, 1)
}

func TestConsumeIsOneTime(t *testing.T) {
	creds := &fakeCreds{}
	user := creds.addUser("fer@example.com", "fer1234")
	issuer := NewTokenIssuer(creds)

	token, seriesID, err := issuer.Issue(user.ID)
	require.NoError(t, err)

	got, err := issuer.Consume("fer@example.com", token, seriesID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = issuer.Consume("fer@example.com", token, seriesID)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = issuer.Verify("fer@example.com", token, seriesID)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestFailedConsumeLeavesPairIntact(t *testing.T) {
	creds := &fakeCreds{}
	user := creds.addUser("fer@example.com", "fer1234")
	issuer := NewTokenIssuer(creds)

	token, seriesID, err := issuer.Issue(user.ID)
	require.NoError(t, err)

	_, err = issuer.Consume("fer@example.com", "bogus", seriesID)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	got, err := issuer.Verify("fer@example.com", token, seriesID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestVerifyFlagsKnownSeriesWithWrongToken(t *testing.T) {
	creds := &fakeCreds{}
	user := creds.addUser("fer@example.com", "fer1234")
	issuer := NewTokenIssuer(creds)

	_, seriesID, err := issuer.Issue(user.ID)
	require.NoError(t, err)

	core, logs := observer.New(zap.WarnLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	// A series we issued, presented with a wrong token: guessing signal
	_, err = issuer.Verify("fer@example.com", "bogus", seriesID)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, "possible brute force")

	// A series we never issued stays quiet
	_, err = issuer.Verify("fer@example.com", "bogus", "never-issued")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, 1, logs.Len())

	// Both misses went through the series check, only one was flagged
	assert.Equal(t, 2, creds.seriesCalls)
}

func TestPairsPerDeviceCoexist(t *testing.T) {
	creds := &fakeCreds{}
	user := creds.addUser("fer@example.com", "fer1234")
	issuer := NewTokenIssuer(creds)

	t1, s1, err := issuer.Issue(user.ID)
	require.NoError(t, err)
	t2, s2, err := issuer.Issue(user.ID)
	require.NoError(t, err)

	_, err = issuer.Verify("fer@example.com", t1, s1)
	assert.NoError(t, err)
	_, err = issuer.Verify("fer@example.com", t2, s2)
	assert.NoError(t, err)

	// Pairs don't cross: each token only matches its own series
	_, err = issuer.Verify("fer@example.com", t1, s2)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
