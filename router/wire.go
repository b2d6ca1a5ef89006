package router

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"pacemaker/config"
	"pacemaker/pkg/auth"
	authCtrlImp "pacemaker/pkg/auth/controllerImp"
	healthCtrlImp "pacemaker/pkg/health/controllerImp"
	"pacemaker/pkg/middleware"

	planCtrlImp "pacemaker/pkg/plan/controllerImp"
	planRepoImp "pacemaker/pkg/plan/repositoryImp"
	planSvcImp "pacemaker/pkg/plan/serviceImp"

	projectCtrlImp "pacemaker/pkg/project/controllerImp"
	projectRepoImp "pacemaker/pkg/project/repositoryImp"
	projectSvcImp "pacemaker/pkg/project/serviceImp"

	reviewCtrlImp "pacemaker/pkg/review/controllerImp"
	reviewRepoImp "pacemaker/pkg/review/repositoryImp"
	reviewSvcImp "pacemaker/pkg/review/serviceImp"

	taskCtrlImp "pacemaker/pkg/task/controllerImp"
	taskRepoImp "pacemaker/pkg/task/repositoryImp"
	taskSvcImp "pacemaker/pkg/task/serviceImp"
)

// Wire builds repositories, services and controllers over db and registers
// the routes. p may be nil when cfg.SetupRequired().
func Wire(e *echo.Echo, db *gorm.DB, cfg config.AppConfig, p auth.Provider) *echo.Echo {
	loc := cfg.Location()
	cookies := auth.Cookies{Secure: cfg.CookieSecure}

	projects := projectRepoImp.New(db)
	tasks := taskRepoImp.New(db)
	plans := planRepoImp.New(db)

	projectSvc := projectSvcImp.NewProjectService(projects)
	taskSvc := taskSvcImp.NewTaskService(tasks, projects, loc)
	planSvc := planSvcImp.NewPlanService(plans, tasks, loc)
	reviewSvc := reviewSvcImp.NewReviewService(reviewRepoImp.New(db), plans, planSvc)

	var session echo.MiddlewareFunc
	if p != nil {
		session = middleware.Session(p, cookies, cfg.AuthTimeout)
	}
	return New(e, cfg.SetupRequired(), session, Controllers{
		Health:  healthCtrlImp.NewHealthCtrl(db, !cfg.SetupRequired()),
		Auth:    authCtrlImp.NewAuthController(p, cookies, cfg.SiteURL),
		Project: projectCtrlImp.New(projectSvc),
		Task:    taskCtrlImp.New(taskSvc),
		Plan:    planCtrlImp.NewPlanCtrl(planSvc, loc),
		Review:  reviewCtrlImp.New(reviewSvc, loc),
	})
}
