package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tshimanga/elimu/core"
	"github.com/tshimanga/elimu/core/progress"
)

type progressApi struct {
	svc      *progress.Service
	validate *validator.Validate
}

func registerProgressAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := progressApi{
		svc:      deps.ProgressSvc,
		validate: deps.Validate,
	}

	g.POST("/progress", api.record, jwt)
	g.GET("/user/progress", api.query, jwt)
}

// Handlers

func (api *progressApi) record(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data progress.NewProgress
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProgress")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	prg, err := api.svc.Record(ctx.Request().Context(), claims.Subject, data)
	if err != nil {
		if errors.Cause(err) == progress.ErrLessonNotFound {
			return core.NewValidationError(nil, core.FieldError{Field: "lessonId", Error: progress.ErrLessonNotFound.Error()})
		}
		return errors.Wrap(err, "recording progress")
	}
	return ctx.JSON(http.StatusOK, prg)
}

func (api *progressApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	rows, err := api.svc.QueryByUser(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying progress")
	}
	if rows == nil {
		rows = []progress.Progress{}
	}
	return ctx.JSON(http.StatusOK, rows)
}
