package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahub/darasa/core/course"
	"github.com/darasahub/darasa/core/user"
)

type courseApi struct {
	svc      course.ServiceInterface
	userSvc  user.ServiceInterface
	validate *validator.Validate
}

func registerCourseAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc course.ServiceInterface,
	userSvc user.ServiceInterface,
	validate *validator.Validate,
) {
	api := courseApi{svc: svc, userSvc: userSvc, validate: validate}

	cg := g.Group("/courses", jwt)
	cg.GET("", api.query)
	cg.POST("", api.create, orgStaffMiddleware)

	dg := cg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, orgStaffMiddleware)
	dg.DELETE("", api.destroy, orgStaffMiddleware)
}

// Handlers

func (api *courseApi) query(ctx echo.Context) error {
	ctxUsr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	filter := new(course.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []course.Course{})
	}
	filter.Clean()
	scopeCourseFilter(filter, ctxUsr)

	courses, err := api.svc.Query(*filter)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

// scopeCourseFilter narrows a course query to what the user may see:
// non-platform staff are fenced into their organization, and instructors who
// are not admins only see their own courses.
func scopeCourseFilter(filter *course.QueryFilter, ctxUsr user.User) {
	if !ctxUsr.IsSuperAdmin() {
		filter.TenantKey = ctxUsr.TenantKey
	}
	if ctxUsr.IsInstructor() && !(ctxUsr.IsOrgAdmin() || ctxUsr.IsSuperAdmin()) {
		filter.InstructorID = ctxUsr.ID
	}
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if !ctxUsr.IsSuperAdmin() {
		data.TenantKey = ctxUsr.TenantKey
	}

	instructorName := ctxUsr.Name
	if data.InstructorID == 0 {
		data.InstructorID = ctxUsr.ID
	} else if data.InstructorID != ctxUsr.ID {
		instructor, err := api.userSvc.GetByID(data.InstructorID)
		if err != nil {
			return errors.Wrap(err, "finding instructor by ID")
		}
		instructorName = instructor.Name
	}

	c, err := api.svc.Create(data, instructorName)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	c, err := api.getScopedCourse(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) update(ctx echo.Context) error {
	c, err := api.getScopedCourse(ctx)
	if err != nil {
		return err
	}

	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err = api.svc.Update(c.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	c, err := api.getScopedCourse(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(c.ID); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// getScopedCourse loads the :id course, hiding it from users outside its
// organization and from instructors who do not own it.
func (api *courseApi) getScopedCourse(ctx echo.Context) (course.Course, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return course.Course{}, errHttpNotFound
	}
	c, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return course.Course{}, errHttpNotFound
		}
		return course.Course{}, errors.Wrap(err, "finding course by ID")
	}

	ctxUsr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "getting context user")
	}
	if !ctxUsr.IsSuperAdmin() && c.TenantKey != ctxUsr.TenantKey {
		return course.Course{}, errHttpNotFound
	}
	if ctxUsr.IsInstructor() && !(ctxUsr.IsOrgAdmin() || ctxUsr.IsSuperAdmin()) && c.InstructorID != ctxUsr.ID {
		return course.Course{}, errHttpNotFound
	}
	return c, nil
}
