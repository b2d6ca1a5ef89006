package router

import (
	"github.com/labstack/echo/v4"

	"pacemaker/pkg/middleware"
)

type Controllers struct {
	Health interface{ Health(echo.Context) error }
	Auth   interface {
		SignUp(echo.Context) error
		Login(echo.Context) error
		OAuthStart(echo.Context) error
		Callback(echo.Context) error
		Logout(echo.Context) error
		WhoAmI(echo.Context) error
		LoginView(echo.Context) error
	}
	Project interface {
		List(echo.Context) error
		Create(echo.Context) error
		Get(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
		Summary(echo.Context) error
	}
	Task interface {
		ListByProject(echo.Context) error
		Create(echo.Context) error
		Get(echo.Context) error
		Update(echo.Context) error
		Delete(echo.Context) error
		Toggle(echo.Context) error
		Logs(echo.Context) error
	}
	Plan interface {
		Week(echo.Context) error
		Items(echo.Context) error
		AddItem(echo.Context) error
		Reorder(echo.Context) error
		RemoveItem(echo.Context) error
		Pick(echo.Context) error
		Unpick(echo.Context) error
		Today(echo.Context) error
	}
	Review interface {
		Overview(echo.Context) error
		Get(echo.Context) error
		Save(echo.Context) error
	}
}

// New registers all routes. With setupRequired every route but /health serves
// the setup page and session is ignored.
func New(e *echo.Echo, setupRequired bool, session echo.MiddlewareFunc, h Controllers) *echo.Echo {
	e.Use(middleware.Setup(setupRequired))
	e.GET("/health", h.Health.Health)
	if setupRequired {
		return e
	}
	if session != nil {
		e.Use(session)
	}

	a := e.Group("/auth")
	a.POST("/signup", h.Auth.SignUp)
	a.POST("/login", h.Auth.Login)
	a.GET("/oauth/:provider", h.Auth.OAuthStart)
	a.GET("/callback", h.Auth.Callback)
	a.POST("/logout", h.Auth.Logout)
	e.GET("/whoami", h.Auth.WhoAmI)
	e.GET("/login", h.Auth.LoginView)

	api := e.Group("/api/v1", middleware.RequireUser())
	api.GET("/summary", h.Project.Summary)

	api.GET("/projects", h.Project.List)
	api.POST("/projects", h.Project.Create)
	api.GET("/projects/:id", h.Project.Get)
	api.PATCH("/projects/:id", h.Project.Update)
	api.DELETE("/projects/:id", h.Project.Delete)
	api.GET("/projects/:id/tasks", h.Task.ListByProject)
	api.POST("/projects/:id/tasks", h.Task.Create)

	api.GET("/tasks/:id", h.Task.Get)
	api.PATCH("/tasks/:id", h.Task.Update)
	api.DELETE("/tasks/:id", h.Task.Delete)
	api.POST("/tasks/:id/toggle", h.Task.Toggle)
	api.GET("/logs", h.Task.Logs)

	// weekly plan
	api.GET("/weeks/current", h.Plan.Week)
	api.GET("/plans/:id/items", h.Plan.Items)
	api.POST("/plans/:id/items", h.Plan.AddItem)
	api.POST("/plans/:id/reorder", h.Plan.Reorder)
	api.DELETE("/items/:id", h.Plan.RemoveItem)
	api.PUT("/items/:id/pick", h.Plan.Pick)
	api.DELETE("/items/:id/pick", h.Plan.Unpick)
	api.GET("/today", h.Plan.Today)

	api.GET("/review", h.Review.Overview)
	api.GET("/plans/:id/review", h.Review.Get)
	api.PUT("/plans/:id/review", h.Review.Save)
	return e
}
