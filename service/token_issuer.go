package service

import (
	"errors"
	"fmt"
	"strings"

	"webbu/skill-api/model"
	"webbu/skill-api/store"
	"webbu/skill-api/util"

	"go.uber.org/zap"
)

const tokenBytes = 32 // 256 bits each for token and series id

// CredentialStore is the slice of durable storage the auth core needs.
// *store.Credentials satisfies it; tests plug in fakes.
type CredentialStore interface {
	CreateUser(u *model.User) error
	FindUserByEmail(email string) (*model.User, error)
	FindUserByID(id uint) (*model.User, error)
	FindUserByReferralCode(code string) (*model.User, error)
	MarkVerified(userID uint) error
	CreateTokenPair(p *model.RememberMeToken) error
	FindTokenPair(userID uint, token, seriesID string) (*model.RememberMeToken, error)
	SeriesExists(userID uint, seriesID string) (bool, error)
	DeleteTokenPair(p *model.RememberMeToken) error
}

// TokenIssuer generates and validates remember-me token pairs.
//
// A pair is a token plus a series identifier, both unguessable. The series
// lets us tell "someone is guessing tokens for a series we issued" apart
// from "series we never issued", which is the brute-force detection signal.
// Based on https://stackoverflow.com/questions/244882 but not entirely.
type TokenIssuer struct {
	Store CredentialStore
}

func NewTokenIssuer(s CredentialStore) *TokenIssuer {
	return &TokenIssuer{Store: s}
}

// Issue generates a fresh pair for the user and persists it. Several pairs
// may coexist per user (one per device plus pending magic links).
func (t *TokenIssuer) Issue(userID uint) (token, seriesID string, err error) {
	token, err = generateSecret()
	if err != nil {
		return "", "", err
	}

	seriesID, err = generateSecret()
	if err != nil {
		return "", "", err
	}

	err = t.Store.CreateTokenPair(&model.RememberMeToken{
		UserID:        userID,
		Token:         token,
		TokenSeriesID: seriesID,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to save token pair, %w", err)
	}

	return token, seriesID, nil
}

// Verify resolves the user by email and checks the exact triple against the
// store. Any miss is ErrNotAuthenticated. Verify never mutates state, which
// is what makes session-cache races harmless.
func (t *TokenIssuer) Verify(email, token, seriesID string) (*model.User, error) {
	user, _, err := t.lookup(email, token, seriesID)
	return user, err
}

// Consume is Verify plus one-time semantics: the matched pair is deleted so
// a magic link can never authenticate twice.
func (t *TokenIssuer) Consume(email, token, seriesID string) (*model.User, error) {
	user, pair, err := t.lookup(email, token, seriesID)
	if err != nil {
		return nil, err
	}

	if err := t.Store.DeleteTokenPair(pair); err != nil {
		return nil, fmt.Errorf("failed to delete consumed token pair, %w", err)
	}

	return user, nil
}

func (t *TokenIssuer) lookup(email, token, seriesID string) (*model.User, *model.RememberMeToken, error) {
	email = strings.ToLower(email)

	user, err := t.Store.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrNotAuthenticated
		}

		return nil, nil, fmt.Errorf("failed to look up user, %w", err)
	}

	pair, err := t.Store.FindTokenPair(user.ID, token, seriesID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			t.flagSeriesMismatch(user.ID, email, seriesID)
			return nil, nil, ErrNotAuthenticated
		}

		return nil, nil, fmt.Errorf("failed to look up token pair, %w", err)
	}

	return user, pair, nil
}

// flagSeriesMismatch logs when the presented series exists but the token
// didn't match it. The caller-visible result stays a uniform
// ErrNotAuthenticated either way.
func (t *TokenIssuer) flagSeriesMismatch(userID uint, email, seriesID string) {
	if seriesID == "" {
		return
	}

	found, err := t.Store.SeriesExists(userID, seriesID)
	if err != nil {
		zap.L().Debug("Failed to check series id", zap.Error(err))
		return
	}

	if found {
		zap.L().Warn("Valid series id presented with wrong token, possible brute force",
			zap.String("email", email))
	}
}

func generateSecret() (string, error) {
	s, err := util.GenerateToken(tokenBytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate secret, %w", err)
	}

	return s, nil
}
