package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core/group"
)

type groupApi struct {
	srv *server
	svc *group.Service
}

func registerGroupAPI(g *echo.Group, jwt echo.MiddlewareFunc, srv *server) {
	api := groupApi{srv: srv, svc: srv.opts.GroupSvc}

	gg := g.Group("/groups", jwt)
	gg.GET("", api.query)
	gg.GET("/:name", api.retrieveByName)
	gg.POST("", api.create)
}

func (api *groupApi) query(ctx echo.Context) error {
	groups, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying groups")
	}
	if groups == nil {
		groups = []group.Group{}
	}
	return ctx.JSON(http.StatusOK, groups)
}

func (api *groupApi) retrieveByName(ctx echo.Context) error {
	grp, err := api.svc.GetByName(ctx.Request().Context(), ctx.Param("name"))
	if err != nil {
		if errors.Cause(err) == group.ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Grupo no encontrado")
		}
		return errors.Wrap(err, "finding group by name")
	}
	return ctx.JSON(http.StatusOK, grp)
}

func (api *groupApi) create(ctx echo.Context) error {
	var data group.NewGroup
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGroup")
	}
	if err := api.srv.validate.Struct(&data); err != nil {
		return err
	}

	grp, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating group")
	}
	return ctx.JSON(http.StatusCreated, grp)
}
