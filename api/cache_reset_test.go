package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"webbu/skill-api/model"
	"webbu/skill-api/service"
	"webbu/skill-api/store"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCreds serves exactly one user with one valid pair, enough to get an
// entry into the session cache.
type stubCreds struct {
	user model.User
	pair model.RememberMeToken
}

func (s *stubCreds) CreateUser(*model.User) error { return nil }

func (s *stubCreds) FindUserByEmail(email string) (*model.User, error) {
	if email == s.user.Email {
		cp := s.user
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (s *stubCreds) FindUserByID(uint) (*model.User, error) { return nil, store.ErrNotFound }

func (s *stubCreds) FindUserByReferralCode(string) (*model.User, error) {
	return nil, store.ErrNotFound
}

func (s *stubCreds) MarkVerified(uint) error { return nil }

func (s *stubCreds) CreateTokenPair(*model.RememberMeToken) error { return nil }

func (s *stubCreds) FindTokenPair(userID uint, token, seriesID string) (*model.RememberMeToken, error) {
	if userID == s.user.ID && token == s.pair.Token && seriesID == s.pair.TokenSeriesID {
		cp := s.pair
		return &cp, nil
	}
	return nil, store.ErrNotFound
}

func (s *stubCreds) SeriesExists(uint, string) (bool, error) { return false, nil }

func (s *stubCreds) DeleteTokenPair(*model.RememberMeToken) error { return nil }

func newCacheResetFixture(t *testing.T) *API {
	t.Helper()
	gin.SetMode(gin.TestMode)

	viper.Set("auth.admin_emails", []string{"op@example.com"})
	viper.Set("auth.edit_key", "the-edit-key")

	creds := &stubCreds{
		user: model.User{ID: 1, Email: "op@example.com"},
		pair: model.RememberMeToken{ID: 1, UserID: 1, Token: "tok", TokenSeriesID: "ser"},
	}

	sessions := service.NewSessionCache(service.NewTokenIssuer(creds), 0)
	_, err := sessions.Authenticate("op@example.com", "tok", "ser")
	require.NoError(t, err)
	require.Equal(t, 1, sessions.Len())

	return &API{Sessions: sessions}
}

func doCacheReset(a *API, email, code string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/admin/cache_reset?code="+code, nil)
	c.Set("requestID", "testreq")
	c.Set("user", &model.User{Email: email})

	a.CacheReset(c)
	return w
}

func TestCacheResetRefusesNonOperators(t *testing.T) {
	a := newCacheResetFixture(t)

	w := doCacheReset(a, "random@example.com", "the-edit-key")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"refused":"not done"}`, w.Body.String())
	assert.Equal(t, 1, a.Sessions.Len(), "cache untouched")
}

func TestCacheResetRefusesWrongCode(t *testing.T) {
	a := newCacheResetFixture(t)

	w := doCacheReset(a, "op@example.com", "guessed")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"refused":"not done"}`, w.Body.String())
	assert.Equal(t, 1, a.Sessions.Len())

	// The two refusals are indistinguishable from outside
	other := doCacheReset(a, "random@example.com", "the-edit-key")
	assert.Equal(t, other.Body.String(), w.Body.String())
	assert.Equal(t, other.Code, w.Code)
}

func TestCacheResetClearsForOperator(t *testing.T) {
	a := newCacheResetFixture(t)

	w := doCacheReset(a, "op@example.com", "the-edit-key")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":"done"}`, w.Body.String())
	assert.Equal(t, 0, a.Sessions.Len())
}
