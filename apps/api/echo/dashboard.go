package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/dccampos/secretaria/core/enrollment"
)

type dashboardApi struct {
	deps ServerDeps
}

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := dashboardApi{deps: deps}
	g.GET("/dashboard", api.summary, jwt, adminMiddleware())
}

func (api *dashboardApi) summary(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	pending, err := api.deps.EnrollmentSvc.CountByStatus(reqCtx, enrollment.StatusPending)
	if err != nil {
		return errors.Wrap(err, "counting pending applications")
	}
	students, err := api.deps.StudentSvc.Count(reqCtx)
	if err != nil {
		return errors.Wrap(err, "counting students")
	}

	return ctx.JSON(http.StatusOK, DashboardResponse{
		PendingApplications: pending,
		Students:            students,
		TokenLive:           api.deps.AttendanceMgr.Snapshot().Live,
	})
}
