package auth

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"golang.org/x/oauth2"
)

const (
	AccessCookie   = "pm-access-token"
	RefreshCookie  = "pm-refresh-token"
	VerifierCookie = "pm-code-verifier"

	identityKey = "identity"

	refreshCookieAge  = 60 * 60 * 24 * 30
	verifierCookieAge = 10 * 60
)

// Cookies writes and clears the session cookies.
type Cookies struct {
	Secure bool
}

func (ck Cookies) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   ck.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (ck Cookies) WriteSession(c echo.Context, tok *oauth2.Token) {
	if tok == nil {
		return
	}
	age := refreshCookieAge
	if !tok.Expiry.IsZero() {
		// the access cookie outlives the token so the middleware can still refresh it
		age = max(int(time.Until(tok.Expiry).Seconds()), 0) + refreshCookieAge
	}
	c.SetCookie(ck.cookie(AccessCookie, tok.AccessToken, age))
	if tok.RefreshToken != "" {
		c.SetCookie(ck.cookie(RefreshCookie, tok.RefreshToken, refreshCookieAge))
	}
}

func (ck Cookies) Clear(c echo.Context) {
	for _, name := range []string{AccessCookie, RefreshCookie, VerifierCookie} {
		c.SetCookie(ck.cookie(name, "", -1))
	}
}

func (ck Cookies) WriteVerifier(c echo.Context, verifier string) {
	c.SetCookie(ck.cookie(VerifierCookie, verifier, verifierCookieAge))
}

func (ck Cookies) TakeVerifier(c echo.Context) string {
	v, err := c.Cookie(VerifierCookie)
	if err != nil {
		return ""
	}
	c.SetCookie(ck.cookie(VerifierCookie, "", -1))
	return v.Value
}

// ReadSession rebuilds the token from cookies; nil when there is no access token.
func ReadSession(c echo.Context) *oauth2.Token {
	at, err := c.Cookie(AccessCookie)
	if err != nil || at.Value == "" {
		return nil
	}
	tok := &oauth2.Token{AccessToken: at.Value, TokenType: "bearer", Expiry: TokenExpiry(at.Value)}
	if rt, err := c.Cookie(RefreshCookie); err == nil {
		tok.RefreshToken = rt.Value
	}
	return tok
}

// TokenExpiry reads the exp claim without verifying the signature. The
// provider verifies the token on every GetUser call.
func TokenExpiry(accessToken string) time.Time {
	var claims jwt.StandardClaims
	if _, _, err := new(jwt.Parser).ParseUnverified(accessToken, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(claims.ExpiresAt, 0)
}

// NewPKCE returns a fresh verifier and its S256 challenge.
func NewPKCE() (verifier, challenge string) {
	verifier = oauth2.GenerateVerifier()
	return verifier, oauth2.S256ChallengeFromVerifier(verifier)
}

func SetIdentity(c echo.Context, id Identity) { c.Set(identityKey, id) }

// CurrentIdentity returns the caller set by the session middleware.
func CurrentIdentity(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityKey).(Identity)
	return id, ok && id.UserID != ""
}

// UserID is CurrentIdentity().UserID, empty for anonymous requests.
func UserID(c echo.Context) string {
	id, _ := CurrentIdentity(c)
	return id.UserID
}
