package controller

import "github.com/labstack/echo/v4"

type AuthController interface {
	SignUp(c echo.Context) error
	Login(c echo.Context) error
	OAuthStart(c echo.Context) error
	Callback(c echo.Context) error
	Logout(c echo.Context) error
	WhoAmI(c echo.Context) error
	LoginView(c echo.Context) error
}
