package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core/student"
)

type studentApi struct {
	srv *server
	svc *student.Service
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, srv *server) {
	api := studentApi{srv: srv, svc: srv.opts.StudentSvc}

	sg := g.Group("/students", jwt)
	sg.GET("/group/:groupId", api.queryByGroup)
	sg.GET("/:matricula", api.retrieveByMatricula)
}

func (api *studentApi) retrieveByMatricula(ctx echo.Context) error {
	matricula := ctx.Param("matricula")
	if matricula == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "La matrícula es requerida")
	}
	s, err := api.svc.GetByMatricula(ctx.Request().Context(), matricula)
	if err != nil {
		if errors.Cause(err) == student.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Estudiante no encontrado")
		}
		return errors.Wrap(err, "finding student by matricula")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) queryByGroup(ctx echo.Context) error {
	groupID, err := strconv.Atoi(ctx.Param("groupId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "El ID del grupo es requerido y debe ser un número válido")
	}
	students, err := api.svc.QueryByGroup(ctx.Request().Context(), groupID)
	if err != nil {
		return errors.Wrap(err, "querying students by group")
	}
	if len(students) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "No se encontraron estudiantes para este grupo")
	}
	return ctx.JSON(http.StatusOK, students)
}
