package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core"
	"github.com/AxelGHMM/CACE/core/roster"
)

type rosterApi struct {
	srv *server
	svc *roster.Service
}

func registerRosterAPI(g *echo.Group, jwt echo.MiddlewareFunc, srv *server) {
	api := rosterApi{srv: srv, svc: srv.opts.RosterSvc}

	g.POST("/upload", api.upload, jwt)
}

// upload ingests a parsed roster spreadsheet: upserts students into the
// group and provisions their grade rows. Partial failures leave earlier
// records persisted; re-uploading the same file converges.
func (api *rosterApi) upload(ctx echo.Context) error {
	var batch roster.Batch
	if err := ctx.Bind(&batch); err != nil {
		return core.NewValidationError(errors.New("Datos inválidos. Verifica el grupo y el archivo."))
	}
	if err := batch.Validate(api.srv.validate); err != nil {
		return core.NewValidationError(errors.New("Datos inválidos. Verifica el grupo y el archivo."))
	}

	res, err := api.svc.Ingest(ctx.Request().Context(), batch)
	if err != nil {
		return errors.Wrap(err, "ingesting roster batch")
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"message":        "Archivo subido y estudiantes registrados correctamente.",
		"batch_id":       res.BatchID,
		"students":       res.Students,
		"grades_created": res.GradesCreated,
	})
}
