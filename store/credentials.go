package store

import (
	"time"

	"webbu/skill-api/model"

	"gorm.io/gorm"
)

// Credentials is the durable store of users and their issued token pairs.
type Credentials struct {
	DB *gorm.DB
}

func NewCredentials(db *gorm.DB) *Credentials {
	return &Credentials{DB: db}
}

// CreateUser inserts a new user. A duplicate email or username comes back as
// a *ConflictError naming the field.
func (s *Credentials) CreateUser(u *model.User) error {
	return translate(s.DB.Create(u).Error)
}

func (s *Credentials) FindUserByEmail(email string) (*model.User, error) {
	var u model.User
	if err := s.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}

	return &u, nil
}

func (s *Credentials) FindUserByID(id uint) (*model.User, error) {
	var u model.User
	if err := s.DB.Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err)
	}

	return &u, nil
}

func (s *Credentials) FindUserByUsername(username string) (*model.User, error) {
	var u model.User
	if err := s.DB.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}

	return &u, nil
}

func (s *Credentials) FindUserByReferralCode(code string) (*model.User, error) {
	var u model.User
	if err := s.DB.Where("referral_code = ?", code).First(&u).Error; err != nil {
		return nil, translate(err)
	}

	return &u, nil
}

// MarkVerified sets the email-verified flag. Idempotent: a second call for
// an already-verified user is a no-op.
func (s *Credentials) MarkVerified(userID uint) error {
	return translate(s.DB.
		Model(model.User{}).
		Where("id = ?", userID).
		Update("email_verified", true).
		Error)
}

func (s *Credentials) CreateTokenPair(p *model.RememberMeToken) error {
	return translate(s.DB.Create(p).Error)
}

// FindTokenPair looks up a stored pair by the exact (user, token, series)
// triple. Anything less than an exact match is ErrNotFound.
func (s *Credentials) FindTokenPair(userID uint, token, seriesID string) (*model.RememberMeToken, error) {
	var p model.RememberMeToken
	err := s.DB.
		Where("user_id = ? AND token = ? AND token_series_id = ?", userID, token, seriesID).
		First(&p).
		Error
	if err != nil {
		return nil, translate(err)
	}

	return &p, nil
}

// SeriesExists reports whether any pair with this series id is stored for
// the user. A present series with a mismatched token is the brute-force
// guessing signal.
func (s *Credentials) SeriesExists(userID uint, seriesID string) (bool, error) {
	var found bool
	err := s.DB.
		Model(model.RememberMeToken{}).
		Select("count(*) > 0").
		Where("user_id = ? AND token_series_id = ?", userID, seriesID).
		Find(&found).
		Error
	if err != nil {
		return false, translate(err)
	}

	return found, nil
}

func (s *Credentials) DeleteTokenPair(p *model.RememberMeToken) error {
	return translate(s.DB.Delete(p).Error)
}

// DeleteTokenPairsBefore removes pairs created before the cutoff. Used by
// the periodic sweeper to get rid of magic-link pairs that were never
// clicked and long-abandoned sessions.
func (s *Credentials) DeleteTokenPairsBefore(cutoff time.Time) (int64, error) {
	r := s.DB.Where("created_at < ?", cutoff).Delete(model.RememberMeToken{})
	return r.RowsAffected, translate(r.Error)
}
