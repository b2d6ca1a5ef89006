package controllerImp

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"pacemaker/pkg/auth"
	"pacemaker/pkg/auth/controller"
	"pacemaker/pkg/respond"
)

type authCtrl struct {
	p       auth.Provider
	cookies auth.Cookies
	siteURL string
}

func NewAuthController(p auth.Provider, cookies auth.Cookies, siteURL string) controller.AuthController {
	return &authCtrl{p: p, cookies: cookies, siteURL: strings.TrimRight(siteURL, "/")}
}

type credentials struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (req *credentials) valid() bool {
	req.Email = strings.TrimSpace(req.Email)
	return req.Email != "" && req.Password != ""
}

func (h *authCtrl) SignUp(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil || !req.valid() {
		return respond.JSONError(c, http.StatusBadRequest, "email and password are required")
	}
	tok, u, err := h.p.SignUp(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.providerErr(c, err)
	}
	h.cookies.WriteSession(c, tok)
	return c.JSON(http.StatusOK, map[string]any{
		"user":                  u,
		"confirmation_required": tok == nil,
	})
}

func (h *authCtrl) Login(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil || !req.valid() {
		return respond.JSONError(c, http.StatusBadRequest, "email and password are required")
	}
	tok, u, err := h.p.SignInWithPassword(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.providerErr(c, err)
	}
	h.cookies.WriteSession(c, tok)
	return c.JSON(http.StatusOK, map[string]any{"user": u})
}

// OAuthStart sends the browser to the provider with a PKCE challenge. The
// verifier waits in a short-lived cookie for the callback.
func (h *authCtrl) OAuthStart(c echo.Context) error {
	verifier, challenge := auth.NewPKCE()
	h.cookies.WriteVerifier(c, verifier)

	redirect := h.siteURL + "/auth/callback"
	if next := safeNext(c.QueryParam("next")); next != "/" {
		redirect += "?next=" + url.QueryEscape(next)
	}
	return c.Redirect(http.StatusFound, h.p.AuthorizeURL(c.Param("provider"), redirect, challenge))
}

func (h *authCtrl) Callback(c echo.Context) error {
	if e := c.QueryParam("error"); e != "" {
		return loginRedirect(c, e, c.QueryParam("error_description"))
	}
	next := safeNext(c.QueryParam("next"))
	code := c.QueryParam("code")
	if code == "" {
		return c.Redirect(http.StatusFound, next)
	}
	tok, _, err := h.p.ExchangeCode(c.Request().Context(), code, h.cookies.TakeVerifier(c))
	if err != nil {
		zap.S().Warnw("[auth] code exchange failed", "err", err)
		return loginRedirect(c, "exchange_failed", err.Error())
	}
	h.cookies.WriteSession(c, tok)
	return c.Redirect(http.StatusFound, next)
}

func (h *authCtrl) Logout(c echo.Context) error {
	if tok := auth.ReadSession(c); tok != nil {
		if err := h.p.SignOut(c.Request().Context(), tok.AccessToken); err != nil {
			zap.S().Debugw("[auth] provider sign out failed", "err", err)
		}
	}
	h.cookies.Clear(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *authCtrl) WhoAmI(c echo.Context) error {
	id, ok := auth.CurrentIdentity(c)
	if !ok {
		return c.JSON(http.StatusOK, map[string]any{"authenticated": false})
	}
	return c.JSON(http.StatusOK, map[string]any{"authenticated": true, "user_id": id.UserID, "email": id.Email})
}

// LoginView echoes what the callback reported so the client can show it.
func (h *authCtrl) LoginView(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"error":             c.QueryParam("error"),
		"error_description": c.QueryParam("error_description"),
	})
}

func (h *authCtrl) providerErr(c echo.Context, err error) error {
	var pe *auth.ProviderError
	if errors.As(err, &pe) && pe.Status < 500 {
		return respond.JSONError(c, http.StatusUnauthorized, pe.Error())
	}
	return respond.Err(c, err)
}

func loginRedirect(c echo.Context, code, desc string) error {
	q := url.Values{}
	q.Set("error", code)
	if desc != "" {
		q.Set("error_description", desc)
	}
	return c.Redirect(http.StatusFound, "/login?"+q.Encode())
}

// safeNext only allows same-site paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
