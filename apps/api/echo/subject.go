package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core/subject"
)

type subjectApi struct {
	srv *server
	svc *subject.Service
}

func registerSubjectAPI(g *echo.Group, jwt echo.MiddlewareFunc, srv *server) {
	api := subjectApi{srv: srv, svc: srv.opts.SubjectSvc}

	sg := g.Group("/subjects", jwt)
	sg.GET("", api.query)
	sg.GET("/:id", api.retrieve)
	sg.GET("/name/:name", api.retrieveByName)
	sg.POST("", api.create)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
}

var errSubjectNotFound = echo.NewHTTPError(http.StatusNotFound, "Materia no encontrada")

func (api *subjectApi) query(ctx echo.Context) error {
	subjects, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	if subjects == nil {
		subjects = []subject.Subject{}
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *subjectApi) retrieve(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errSubjectNotFound
	}
	sub, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		if errors.Cause(err) == subject.ErrNotFound {
			return errSubjectNotFound
		}
		return errors.Wrap(err, "finding subject by ID")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *subjectApi) retrieveByName(ctx echo.Context) error {
	sub, err := api.svc.GetByName(ctx.Request().Context(), ctx.Param("name"))
	if err != nil {
		if errors.Cause(err) == subject.ErrNotFound {
			return errSubjectNotFound
		}
		return errors.Wrap(err, "finding subject by name")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *subjectApi) create(ctx echo.Context) error {
	var data subject.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := api.srv.validate.Struct(&data); err != nil {
		return err
	}

	sub, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *subjectApi) update(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errSubjectNotFound
	}

	var data subject.NewSubject
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSubject")
	}
	if err := api.srv.validate.Struct(&data); err != nil {
		return err
	}

	sub, err := api.svc.Rename(ctx.Request().Context(), id, data.Name)
	if err != nil {
		if errors.Cause(err) == subject.ErrNotFound {
			return errSubjectNotFound
		}
		return errors.Wrap(err, "renaming subject")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *subjectApi) destroy(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errSubjectNotFound
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting subject")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Materia eliminada lógicamente"})
}
