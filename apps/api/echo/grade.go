package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core/grade"
)

type gradeApi struct {
	srv *server
	svc *grade.Service
}

func registerGradeAPI(g *echo.Group, jwt echo.MiddlewareFunc, srv *server) {
	api := gradeApi{srv: srv, svc: srv.opts.GradeSvc}

	gg := g.Group("/grade", jwt)
	gg.GET("/group/:groupId/subject/:subjectId", api.queryByGroupAndSubject)
	gg.GET("/group/:groupId/subject/:subjectId/:partial", api.queryByGroupAndSubject)
	gg.GET("/professor/:professorId", api.queryByProfessor)
	gg.PUT("/:id", api.update)
}

var errGradeNotFound = echo.NewHTTPError(http.StatusNotFound, "Registro de calificación no encontrado")

func (api *gradeApi) queryByGroupAndSubject(ctx echo.Context) error {
	groupID, err := strconv.Atoi(ctx.Param("groupId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "groupId y subjectId son requeridos")
	}
	subjectID, err := strconv.Atoi(ctx.Param("subjectId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "groupId y subjectId son requeridos")
	}

	var partial *int
	if p := ctx.Param("partial"); p != "" {
		val, err := strconv.Atoi(p)
		if err != nil || val < 1 || val > grade.NumPartials {
			return echo.NewHTTPError(http.StatusBadRequest, "El parcial debe estar entre 1 y 3")
		}
		partial = &val
	}

	rows, err := api.svc.QueryByGroupAndSubject(ctx.Request().Context(), groupID, subjectID, partial)
	if err != nil {
		return errors.Wrap(err, "querying grades by group and subject")
	}
	if rows == nil {
		rows = []grade.Row{}
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *gradeApi) queryByProfessor(ctx echo.Context) error {
	professorID, err := strconv.Atoi(ctx.Param("professorId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "El ID del profesor debe ser un número válido")
	}
	rows, err := api.svc.QueryByProfessor(ctx.Request().Context(), professorID)
	if err != nil {
		return errors.Wrap(err, "querying grades by professor")
	}
	if rows == nil {
		rows = []grade.Row{}
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *gradeApi) update(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errGradeNotFound
	}

	var data grade.UpdateScores
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateScores")
	}

	g, err := api.svc.UpdateScores(ctx.Request().Context(), id, data)
	if err != nil {
		if errors.Cause(err) == grade.ErrNotFound {
			return errGradeNotFound
		}
		return errors.Wrap(err, "updating grade")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Calificación actualizada", "grade": g})
}
