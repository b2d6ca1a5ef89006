// Package auth talks to the hosted identity provider and keeps the browser
// session in cookies.
package auth

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
)

// Provider is the subset of the GoTrue API the app uses. Sessions travel as
// *oauth2.Token: AccessToken, RefreshToken and Expiry are populated.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (*oauth2.Token, *User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*oauth2.Token, *User, error)
	AuthorizeURL(provider, redirectTo, codeChallenge string) string
	ExchangeCode(ctx context.Context, code, verifier string) (*oauth2.Token, *User, error)
	GetUser(ctx context.Context, accessToken string) (*User, error)
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, *User, error)
	SignOut(ctx context.Context, accessToken string) error
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Identity is the authenticated caller attached to a request.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// ErrRejected wraps provider responses such as bad credentials or an expired code.
var ErrRejected = errors.New("auth provider rejected the request")

// ProviderError carries the provider's error code and description.
type ProviderError struct {
	Status      int
	Code        string
	Description string
}

func (e *ProviderError) Error() string {
	if e.Description != "" {
		return e.Description
	}
	if e.Code != "" {
		return e.Code
	}
	return "auth provider error"
}

func (e *ProviderError) Unwrap() error {
	if e.Status >= 400 && e.Status < 500 {
		return ErrRejected
	}
	return nil
}
