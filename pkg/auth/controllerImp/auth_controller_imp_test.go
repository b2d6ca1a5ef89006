package controllerImp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"pacemaker/pkg/auth"
)

type fakeProvider struct {
	auth.Provider
	gotVerifier string
	signedOut   string
}

func (f *fakeProvider) SignInWithPassword(_ context.Context, email, pw string) (*oauth2.Token, *auth.User, error) {
	if pw != "secret" {
		return nil, nil, &auth.ProviderError{Status: http.StatusBadRequest, Code: "invalid_grant", Description: "Invalid login credentials"}
	}
	return &oauth2.Token{AccessToken: "a1", RefreshToken: "r1", Expiry: time.Now().Add(time.Hour)}, &auth.User{ID: "u1", Email: email}, nil
}

func (f *fakeProvider) AuthorizeURL(provider, redirectTo, challenge string) string {
	q := url.Values{"provider": {provider}, "redirect_to": {redirectTo}, "code_challenge": {challenge}}
	return "https://idp.example/authorize?" + q.Encode()
}

func (f *fakeProvider) ExchangeCode(_ context.Context, code, verifier string) (*oauth2.Token, *auth.User, error) {
	f.gotVerifier = verifier
	if code != "good" {
		return nil, nil, &auth.ProviderError{Status: http.StatusNotFound, Description: "invalid flow state"}
	}
	return &oauth2.Token{AccessToken: "a1", RefreshToken: "r1", Expiry: time.Now().Add(time.Hour)}, &auth.User{ID: "u1"}, nil
}

func (f *fakeProvider) SignOut(_ context.Context, at string) error {
	f.signedOut = at
	return nil
}

func cookieMap(rec *httptest.ResponseRecorder) map[string]string {
	out := map[string]string{}
	for _, ck := range rec.Result().Cookies() {
		out[ck.Name] = ck.Value
	}
	return out
}

func TestLogin(t *testing.T) {
	e := echo.New()
	h := NewAuthController(&fakeProvider{}, auth.Cookies{}, "http://app")

	t.Run("sets session cookies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"me@example.com","password":"secret"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		require.NoError(t, h.Login(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
		ck := cookieMap(rec)
		assert.Equal(t, "a1", ck[auth.AccessCookie])
		assert.Equal(t, "r1", ck[auth.RefreshCookie])
	})

	t.Run("bad credentials are 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"me@example.com","password":"nope"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		require.NoError(t, h.Login(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid login credentials"}`, rec.Body.String())
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("missing fields are 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"  "}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		require.NoError(t, h.Login(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestOAuthFlow(t *testing.T) {
	e := echo.New()
	p := &fakeProvider{}
	h := NewAuthController(p, auth.Cookies{}, "http://app/")

	// start: redirect to the provider with a challenge, verifier kept in a cookie
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/oauth/github?next=/projects", nil), rec)
	c.SetParamNames("provider")
	c.SetParamValues("github")
	require.NoError(t, h.OAuthStart(c))
	assert.Equal(t, http.StatusFound, rec.Code)

	loc, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	require.NoError(t, err)
	assert.Equal(t, "github", loc.Query().Get("provider"))
	assert.Equal(t, "http://app/auth/callback?next=%2Fprojects", loc.Query().Get("redirect_to"))
	verifier := cookieMap(rec)[auth.VerifierCookie]
	require.NotEmpty(t, verifier)
	assert.Equal(t, oauth2.S256ChallengeFromVerifier(verifier), loc.Query().Get("code_challenge"))

	callback := func(target string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.AddCookie(&http.Cookie{Name: auth.VerifierCookie, Value: verifier})
		rec := httptest.NewRecorder()
		require.NoError(t, h.Callback(e.NewContext(req, rec)))
		return rec
	}

	t.Run("success lands on next with a session", func(t *testing.T) {
		rec := callback("/auth/callback?code=good&next=/projects")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/projects", rec.Header().Get(echo.HeaderLocation))
		assert.Equal(t, verifier, p.gotVerifier)
		assert.Equal(t, "a1", cookieMap(rec)[auth.AccessCookie])
	})

	t.Run("provider error goes back to login", func(t *testing.T) {
		rec := callback("/auth/callback?error=access_denied&error_description=User+cancelled")
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login?error=access_denied&error_description=User+cancelled", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("failed exchange goes back to login", func(t *testing.T) {
		rec := callback("/auth/callback?code=stale")
		loc, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
		require.NoError(t, err)
		assert.Equal(t, "/login", loc.Path)
		assert.Equal(t, "exchange_failed", loc.Query().Get("error"))
		assert.Equal(t, "invalid flow state", loc.Query().Get("error_description"))
	})

	t.Run("offsite next is ignored", func(t *testing.T) {
		rec := callback("/auth/callback?code=good&next=//evil.example")
		assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
	})
}

func TestLogoutAndWhoAmI(t *testing.T) {
	e := echo.New()
	p := &fakeProvider{}
	h := NewAuthController(p, auth.Cookies{}, "http://app")

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: auth.AccessCookie, Value: "a1"})
	rec := httptest.NewRecorder()
	require.NoError(t, h.Logout(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "a1", p.signedOut)
	for _, ck := range rec.Result().Cookies() {
		assert.Empty(t, ck.Value)
	}

	rec = httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/whoami", nil), rec)
	require.NoError(t, h.WhoAmI(c))
	assert.JSONEq(t, `{"authenticated":false}`, rec.Body.String())

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/whoami", nil), rec)
	auth.SetIdentity(c, auth.Identity{UserID: "u1", Email: "me@example.com"})
	require.NoError(t, h.WhoAmI(c))
	assert.JSONEq(t, `{"authenticated":true,"user_id":"u1","email":"me@example.com"}`, rec.Body.String())
}
