package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahub/darasa/core/tenant"
)

type orgApi struct {
	svc      tenant.ServiceInterface
	validate *validator.Validate
}

// registerOrgAPI exposes the organization table to platform staff.
// Only mutable presentation metadata may change; keys and legacy ids are fixed.
func registerOrgAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc tenant.ServiceInterface,
	validate *validator.Validate,
) {
	api := orgApi{svc: svc, validate: validate}

	og := g.Group("/organizations", jwt, superAdminMiddleware)
	og.GET("", api.query)
	og.GET("/:key", api.retrieve)
	og.PUT("/:key", api.update)
}

// Handlers

func (api *orgApi) query(ctx echo.Context) error {
	tenants, err := api.svc.Query()
	if err != nil {
		return errors.Wrap(err, "querying organizations")
	}
	return ctx.JSON(http.StatusOK, tenants)
}

func (api *orgApi) retrieve(ctx echo.Context) error {
	t, err := api.svc.GetByKey(ctx.Param("key"))
	if err != nil {
		if errors.Cause(err) == tenant.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding organization by key")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *orgApi) update(ctx echo.Context) error {
	var data tenant.UpdateTenant
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTenant")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	t, err := api.svc.Update(ctx.Param("key"), data)
	if err != nil {
		if errors.Cause(err) == tenant.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating organization")
	}
	return ctx.JSON(http.StatusOK, t)
}
