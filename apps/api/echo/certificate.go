package echoapi

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahub/darasa/core/certificate"
	"github.com/darasahub/darasa/core/user"
)

type certificateApi struct {
	svc     certificate.ServiceInterface
	userSvc user.ServiceInterface
}

func registerCertificateAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc certificate.ServiceInterface,
	userSvc user.ServiceInterface,
) {
	api := certificateApi{svc: svc, userSvc: userSvc}

	// public verification endpoint: the serial is printed on the certificate
	g.GET("/certificates/verify/:serial", api.verify)

	cg := g.Group("/certificates", jwt)
	cg.GET("", api.query)
	cg.GET("/export.csv", api.exportCSV, orgStaffMiddleware)
	cg.POST("", api.issue, orgStaffMiddleware)
}

// Handlers

func (api *certificateApi) verify(ctx echo.Context) error {
	c, err := api.svc.GetBySerial(ctx.Param("serial"))
	if err != nil {
		if errors.Cause(err) == certificate.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding certificate by serial")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *certificateApi) query(ctx echo.Context) error {
	filter, err := api.scopedFilter(ctx)
	if err != nil {
		return err
	}

	certs, err := api.svc.Filter(filter)
	if err != nil {
		return errors.Wrap(err, "querying certificates")
	}
	if certs == nil {
		certs = []certificate.Certificate{}
	}
	return ctx.JSON(http.StatusOK, certs)
}

func (api *certificateApi) issue(ctx echo.Context) error {
	var data certificate.NewCertificate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCertificate")
	}

	ctxUsr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if !ctxUsr.IsSuperAdmin() {
		data.TenantKey = ctxUsr.TenantKey
	}

	c, err := api.svc.Issue(data)
	if err != nil {
		return errors.Wrap(err, "issuing certificate")
	}
	return ctx.JSON(http.StatusCreated, c)
}

// exportCSV streams the organization's issued certificates as a CSV download.
func (api *certificateApi) exportCSV(ctx echo.Context) error {
	filter, err := api.scopedFilter(ctx)
	if err != nil {
		return err
	}
	certs, err := api.svc.Filter(filter)
	if err != nil {
		return errors.Wrap(err, "querying certificates")
	}

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv")
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="certificates.csv"`)
	res.WriteHeader(http.StatusOK)

	w := csv.NewWriter(res)
	if err := w.Write([]string{"serial", "course", "learner", "issued_at"}); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	for _, c := range certs {
		row := []string{c.Serial, c.CourseTitle, c.LearnerName, c.IssuedAt.Format(time.RFC3339)}
		if err := w.Write(row); err != nil {
			return errors.Wrap(err, "writing csv row")
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "flushing csv")
}

// scopedFilter narrows a certificate query to the caller's organization and,
// for learners, to their own certificates.
func (api *certificateApi) scopedFilter(ctx echo.Context) (certificate.QueryFilter, error) {
	ctxUsr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return certificate.QueryFilter{}, errors.Wrap(err, "getting context user")
	}

	var filter certificate.QueryFilter
	if tenantKey := ctx.QueryParam("tenant"); tenantKey != "" {
		filter.TenantKey = tenantKey
	}
	if learnerID, err := strconv.Atoi(ctx.QueryParam("learner")); err == nil {
		filter.LearnerID = learnerID
	}

	if !ctxUsr.IsSuperAdmin() {
		filter.TenantKey = ctxUsr.TenantKey
	}
	if !(ctxUsr.IsSuperAdmin() || ctxUsr.IsOrgAdmin() || ctxUsr.IsInstructor()) {
		filter.LearnerID = ctxUsr.ID
	}
	return filter, nil
}
