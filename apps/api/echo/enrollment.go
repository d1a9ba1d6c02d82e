package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/dccampos/secretaria/core/enrollment"
)

type enrollmentApi struct {
	svc        *enrollment.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerEnrollmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := enrollmentApi{
		svc:        deps.EnrollmentSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	// public enrollment form
	g.POST("/enrollments", api.submit)

	// operator review endpoints
	eg := g.Group("/enrollments", jwt, adminMiddleware())
	eg.GET("", api.query)
	eg.GET("/:id", api.retrieve)
	eg.POST("/:id/approve", api.approve)
	eg.POST("/:id/reject", api.reject)
}

// Handlers

func (api *enrollmentApi) submit(ctx echo.Context) error {
	var data enrollment.NewApplication
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewApplication")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	app, err := api.svc.Submit(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "submitting application")
	}
	return ctx.JSON(http.StatusCreated, app)
}

// query lists applications, newest first; ?status= filters, defaulting to the
// pending review queue. Clients re-fetch after a transition instead of
// patching a local copy.
func (api *enrollmentApi) query(ctx echo.Context) error {
	filter := enrollment.QueryFilter{Status: ctx.QueryParam("status")}
	if filter.Status == "" {
		filter.Status = enrollment.StatusPending
	}

	apps, err := api.svc.Filter(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying applications")
	}
	if apps == nil {
		apps = []enrollment.Application{}
	}
	return ctx.JSON(http.StatusOK, apps)
}

func (api *enrollmentApi) retrieve(ctx echo.Context) error {
	app, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, app)
}

func (api *enrollmentApi) approve(ctx echo.Context) error {
	stu, err := api.svc.Approve(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ApprovalResponse{
		Student:      stu,
		Notification: "welcome email queued",
	})
}

func (api *enrollmentApi) reject(ctx echo.Context) error {
	var data RejectRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RejectRequest")
	}

	app, err := api.svc.Reject(ctx.Request().Context(), ctx.Param("id"), data.Justification)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, app)
}
