package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"webbu/skill-api/model"
	"webbu/skill-api/store"
	"webbu/skill-api/util"

	"go.uber.org/zap"
)

// Mailer delivers the magic-link email. Transport mechanics live behind this
// boundary; the core only cares that the pair reaches the inbox.
type Mailer interface {
	SendLoginLink(email, token, seriesID string) error
}

// Accounts implements the passwordless registration / login flow:
//
//	Anonymous -> EmailSubmitted -> LinkSent -> {LinkValid -> Authenticated, LinkInvalid}
type Accounts struct {
	Store  CredentialStore
	Issuer *TokenIssuer
	Mailer Mailer
}

func NewAccounts(s CredentialStore, issuer *TokenIssuer, mailer Mailer) *Accounts {
	return &Accounts{Store: s, Issuer: issuer, Mailer: mailer}
}

// RegistrationResult is the outcome of RegisterOrSendLink. Exactly one of
// Created/LinkSent is set. The LinkSent shape is deliberately identical for
// new and existing accounts so registration never confirms whether an email
// was already on file.
type RegistrationResult struct {
	Created  bool
	LinkSent bool

	// Only populated when Created: the session pair for the fresh account
	User     *model.User
	Token    string
	SeriesID string
}

// RegisterOrSendLink creates an account for an unknown email, or falls back
// to mailing a login link when the email is already registered. Both paths
// end with a magic link in the user's inbox; only the new-account path also
// hands back a session pair for immediate cookies.
func (a *Accounts) RegisterOrSendLink(email, firstName, lastName, inviteCode string) (*RegistrationResult, error) {
	email = strings.ToLower(email)

	// Unknown invite codes are dropped rather than stored as junk
	if inviteCode != "" {
		if _, err := a.Store.FindUserByReferralCode(inviteCode); err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("failed to check invite code, %w", err)
			}

			zap.L().Debug("Unknown invite code", zap.String("code", inviteCode))
			inviteCode = ""
		}
	}

	referralCode, err := generateReferralCode()
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:         email,
		Username:      generateUsername(email),
		FirstName:     firstName,
		LastName:      lastName,
		ReferralCode:  referralCode,
		InvitedByCode: inviteCode,
	}

	if err := a.Store.CreateUser(user); err != nil {
		var conflict *store.ConflictError
		if errors.As(err, &conflict) {
			switch conflict.Field {
			case "email":
				// Existing account: switch to the login-link flow without
				// surfacing a distinct "already registered" response
				if err := a.SendLoginLink(email); err != nil {
					return nil, err
				}

				return &RegistrationResult{LinkSent: true}, nil
			case "username":
				// Four random digits collided on the same email prefix
				zap.L().Warn("Generated username collided", zap.String("username", user.Username))
			}
		}

		return nil, fmt.Errorf("failed to create user, %w", err)
	}

	token, seriesID, err := a.Issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	// Also mail a link so the address gets verified on first click. The
	// account and session already exist at this point, so a failed send is
	// logged and survivable: re-submitting the email resends the link
	if err := a.Mailer.SendLoginLink(email, token, seriesID); err != nil {
		zap.L().Error("Failed to send magic link after registration",
			zap.Error(err), zap.String("email", email))
	}

	return &RegistrationResult{
		Created:  true,
		User:     user,
		Token:    token,
		SeriesID: seriesID,
	}, nil
}

// SendLoginLink issues a one-time pair for an existing account and mails it.
func (a *Accounts) SendLoginLink(email string) error {
	email = strings.ToLower(email)

	user, err := a.Store.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotAuthenticated
		}

		return fmt.Errorf("failed to look up user, %w", err)
	}

	token, seriesID, err := a.Issuer.Issue(user.ID)
	if err != nil {
		return err
	}

	if err := a.Mailer.SendLoginLink(email, token, seriesID); err != nil {
		return fmt.Errorf("failed to send magic link, %w", err)
	}

	return nil
}

// ConsumeLink handles the magic-link click: the emailed pair is consumed
// (one-time use), the email address is marked verified, and a fresh
// long-lived pair is issued for the follow-on browser session. On mismatch
// or replay nothing is mutated and ErrNotAuthenticated comes back.
func (a *Accounts) ConsumeLink(email, token, seriesID string) (*model.User, string, string, error) {
	user, err := a.Issuer.Consume(email, token, seriesID)
	if err != nil {
		return nil, "", "", err
	}

	if !user.EmailVerified {
		if err := a.Store.MarkVerified(user.ID); err != nil {
			return nil, "", "", fmt.Errorf("failed to mark email verified, %w", err)
		}
		user.EmailVerified = true
	}

	newToken, newSeriesID, err := a.Issuer.Issue(user.ID)
	if err != nil {
		return nil, "", "", err
	}

	return user, newToken, newSeriesID, nil
}

// generateUsername derives a placeholder username from the email local part
// plus four random digits ("fer@host.com" -> "fer4821"). Users can change it
// later; a rare collision surfaces as a username conflict.
func generateUsername(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return fmt.Sprintf("%s%d", local, 1000+rand.Intn(9000))
}

func generateReferralCode() (string, error) {
	s, err := util.GenerateToken(7)
	if err != nil {
		return "", fmt.Errorf("failed to generate referral code, %w", err)
	}

	// db column is 10 chars
	return s[:9], nil
}
