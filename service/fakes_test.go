package service

import (
	"sync"

	"webbu/skill-api/model"
	"webbu/skill-api/store"
)

// fakeCreds is an in-memory CredentialStore. Call counters let the cache
// tests assert which lookups actually reached storage.
type fakeCreds struct {
	mu     sync.Mutex
	users  []model.User
	pairs  []model.RememberMeToken
	nextID uint

	findUserCalls int
	findPairCalls int
	seriesCalls   int

	failWith error
}

func (f *fakeCreds) CreateUser(u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return f.failWith
	}

	for _, ex := range f.users {
		if ex.Email == u.Email {
			return &store.ConflictError{Field: "email"}
		}
		if ex.Username == u.Username {
			return &store.ConflictError{Field: "username"}
		}
	}

	f.nextID++
	u.ID = f.nextID
	f.users = append(f.users, *u)
	return nil
}

func (f *fakeCreds) FindUserByEmail(email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.findUserCalls++
	if f.failWith != nil {
		return nil, f.failWith
	}

	for _, u := range f.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeCreds) FindUserByID(id uint) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.ID == id {
			cp := u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeCreds) FindUserByReferralCode(code string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.ReferralCode == code {
			cp := u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeCreds) MarkVerified(userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.users {
		if f.users[i].ID == userID {
			f.users[i].EmailVerified = true
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeCreds) CreateTokenPair(p *model.RememberMeToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	p.ID = f.nextID
	f.pairs = append(f.pairs, *p)
	return nil
}

func (f *fakeCreds) FindTokenPair(userID uint, token, seriesID string) (*model.RememberMeToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.findPairCalls++
	for _, p := range f.pairs {
		if p.UserID == userID && p.Token == token && p.TokenSeriesID == seriesID {
			cp := p
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeCreds) SeriesExists(userID uint, seriesID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seriesCalls++
	for _, p := range f.pairs {
		if p.UserID == userID && p.TokenSeriesID == seriesID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCreds) DeleteTokenPair(p *model.RememberMeToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, ex := range f.pairs {
		if ex.ID == p.ID {
			f.pairs = append(f.pairs[:i], f.pairs[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// addUser seeds an account directly, bypassing the registration flow.
func (f *fakeCreds) addUser(email, username string) *model.User {
	u := &model.User{Email: email, Username: username}
	if err := f.CreateUser(u); err != nil {
		panic(err)
	}
	return u
}

type sentMail struct {
	email    string
	token    string
	seriesID string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendLoginLink(email, token, seriesID string) error {
	if m.err != nil {
		return m.err
	}

	m.sent = append(m.sent, sentMail{email, token, seriesID})
	return nil
}
