package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core/attendance"
)

type attendanceApi struct {
	srv *server
	svc *attendance.Service
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, srv *server) {
	api := attendanceApi{srv: srv, svc: srv.opts.AttendanceSvc}

	ag := g.Group("/attendances", jwt)
	ag.GET("/group/:groupId/subject/:subjectId", api.roster)
	ag.POST("/submit", api.submit)
}

// roster lists the group's students defaulted to present, for the
// professor to amend and submit.
func (api *attendanceApi) roster(ctx echo.Context) error {
	groupID, err := strconv.Atoi(ctx.Param("groupId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "groupId y subjectId son requeridos")
	}
	subjectID, err := strconv.Atoi(ctx.Param("subjectId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "groupId y subjectId son requeridos")
	}

	entries, err := api.svc.Roster(ctx.Request().Context(), groupID, subjectID)
	if err != nil {
		if errors.Cause(err) == attendance.ErrNoStudents {
			return echo.NewHTTPError(http.StatusNotFound, "No hay alumnos en este grupo")
		}
		return errors.Wrap(err, "loading attendance roster")
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *attendanceApi) submit(ctx echo.Context) error {
	var data attendance.NewBatch
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBatch")
	}
	if err := data.Validate(api.srv.validate); err != nil {
		return err
	}

	// the recording professor comes from the token, never the body
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	atts, err := api.svc.SubmitBatch(ctx.Request().Context(), data, claims.ID)
	if err != nil {
		return errors.Wrap(err, "submitting attendance batch")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"message": "Asistencia registrada", "data": atts})
}
