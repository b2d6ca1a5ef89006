package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	authgo "github.com/supabase-community/auth-go"
	"github.com/supabase-community/auth-go/types"
	"golang.org/x/oauth2"
)

type goTrue struct {
	base   string
	client authgo.Client
}

// NewGoTrue returns a Provider for {projectURL}/auth/v1 using the anon key.
func NewGoTrue(projectURL, anonKey string, timeout time.Duration) Provider {
	base := strings.TrimRight(projectURL, "/") + "/auth/v1"
	// the project ref is unused once the auth URL is set explicitly
	c := authgo.New("", anonKey).
		WithCustomAuthURL(base).
		WithClient(http.Client{Timeout: timeout})
	return &goTrue{base: base, client: c}
}

// SignUp creates the account. Confirmation links point at the project's
// configured site URL.
func (g *goTrue) SignUp(ctx context.Context, email, password string) (*oauth2.Token, *User, error) {
	resp, err := within(ctx, func() (*types.SignupResponse, error) {
		return g.client.Signup(types.SignupRequest{Email: email, Password: password})
	})
	if err != nil {
		return nil, nil, providerErr(err)
	}
	u := toUser(resp.Session.User)
	if u == nil {
		// auto-confirm is off: only the bare user comes back
		u = toUser(resp.User)
	}
	return toToken(resp.Session), u, nil
}

func (g *goTrue) SignInWithPassword(ctx context.Context, email, password string) (*oauth2.Token, *User, error) {
	return g.token(ctx, types.TokenRequest{GrantType: "password", Email: email, Password: password})
}

func (g *goTrue) ExchangeCode(ctx context.Context, code, verifier string) (*oauth2.Token, *User, error) {
	return g.token(ctx, types.TokenRequest{GrantType: "pkce", Code: code, CodeVerifier: verifier})
}

func (g *goTrue) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, *User, error) {
	return g.token(ctx, types.TokenRequest{GrantType: "refresh_token", RefreshToken: refreshToken})
}

// AuthorizeURL is where the browser starts the OAuth flow. GoTrue records the
// challenge and redirect target when the browser arrives there.
func (g *goTrue) AuthorizeURL(provider, redirectTo, codeChallenge string) string {
	q := url.Values{}
	q.Set("provider", provider)
	q.Set("redirect_to", redirectTo)
	if codeChallenge != "" {
		q.Set("code_challenge", codeChallenge)
		q.Set("code_challenge_method", "s256")
	}
	return g.base + "/authorize?" + q.Encode()
}

func (g *goTrue) GetUser(ctx context.Context, accessToken string) (*User, error) {
	resp, err := within(ctx, func() (*types.UserResponse, error) {
		return g.client.WithToken(accessToken).GetUser()
	})
	if err != nil {
		return nil, providerErr(err)
	}
	u := toUser(resp.User)
	if u == nil {
		return nil, errors.New("gotrue /user: empty user id")
	}
	return u, nil
}

func (g *goTrue) SignOut(ctx context.Context, accessToken string) error {
	_, err := within(ctx, func() (struct{}, error) {
		return struct{}{}, g.client.WithToken(accessToken).Logout()
	})
	return providerErr(err)
}

func (g *goTrue) token(ctx context.Context, req types.TokenRequest) (*oauth2.Token, *User, error) {
	resp, err := within(ctx, func() (*types.TokenResponse, error) {
		return g.client.Token(req)
	})
	if err != nil {
		return nil, nil, providerErr(err)
	}
	return toToken(resp.Session), toUser(resp.Session.User), nil
}

// within runs a blocking client call, giving up when ctx ends. The call
// itself is bounded by the http client timeout.
func within[T any](ctx context.Context, call func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := call()
		done <- result{v, err}
	}()
	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func toToken(s types.Session) *oauth2.Token {
	if s.AccessToken == "" {
		return nil
	}
	t := &oauth2.Token{AccessToken: s.AccessToken, TokenType: s.TokenType, RefreshToken: s.RefreshToken}
	switch {
	case s.ExpiresAt > 0:
		t.Expiry = time.Unix(s.ExpiresAt, 0)
	case s.ExpiresIn > 0:
		t.Expiry = time.Now().Add(time.Duration(s.ExpiresIn) * time.Second)
	default:
		t.Expiry = TokenExpiry(s.AccessToken)
	}
	return t
}

func toUser(u types.User) *User {
	if u.ID == uuid.Nil {
		return nil
	}
	return &User{ID: u.ID.String(), Email: u.Email}
}

// statusRe picks the HTTP status out of the client's error text, which has
// the form "response status code 400: {body}".
var statusRe = regexp.MustCompile(`status code (\d{3}):?\s*`)

// providerErr turns a non-2xx response into a *ProviderError. Transport
// failures and context errors pass through unchanged.
func providerErr(err error) error {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	msg := err.Error()
	loc := statusRe.FindStringSubmatchIndex(msg)
	if loc == nil {
		return err
	}
	status, _ := strconv.Atoi(msg[loc[2]:loc[3]])
	raw := strings.TrimSpace(msg[loc[1]:])

	var body struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		ErrorCode        string `json:"error_code"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
	}
	_ = json.Unmarshal([]byte(raw), &body)

	pe := &ProviderError{Status: status, Code: body.Error}
	if pe.Code == "" {
		pe.Code = body.ErrorCode
	}
	for _, d := range []string{body.ErrorDescription, body.Msg, body.Message} {
		if d != "" {
			pe.Description = d
			break
		}
	}
	if pe.Description == "" && pe.Code == "" {
		pe.Description = raw
		if pe.Description == "" {
			pe.Description = http.StatusText(status)
		}
	}
	return pe
}
