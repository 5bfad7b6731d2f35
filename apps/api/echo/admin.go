package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/AxelGHMM/CACE/core/stats"
)

type adminApi struct {
	srv *server
	svc *stats.Service
}

func registerAdminAPI(g *echo.Group, jwt echo.MiddlewareFunc, srv *server) {
	api := adminApi{srv: srv, svc: srv.opts.StatsSvc}

	ag := g.Group("/admin", jwt, adminMiddleware())
	ag.GET("/homepage", api.homepage)
}

func (api *adminApi) homepage(ctx echo.Context) error {
	s, err := api.svc.AdminHomepage(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "loading admin dashboard stats")
	}
	return ctx.JSON(http.StatusOK, s)
}
