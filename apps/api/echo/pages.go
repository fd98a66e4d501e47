package echoapi

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahub/darasa/core/certificate"
	"github.com/darasahub/darasa/core/course"
	"github.com/darasahub/darasa/core/tenant"
	"github.com/darasahub/darasa/core/user"
)

// pagesApi serves the navigable pages of the application. Every handler renders
// inside the shell envelope; the page bodies are interchangeable and thin.
type pagesApi struct {
	registry  *tenant.Registry
	orgSvc    tenant.ServiceInterface
	userSvc   user.ServiceInterface
	courseSvc course.ServiceInterface
	certSvc   certificate.ServiceInterface
}

func registerPages(
	e *echo.Echo,
	deps ServerDeps,
	session echo.MiddlewareFunc,
	rateLimit echo.MiddlewareFunc,
) {
	api := pagesApi{
		registry:  deps.Registry,
		orgSvc:    deps.OrgSvc,
		userSvc:   deps.UserSvc,
		courseSvc: deps.CourseSvc,
		certSvc:   deps.CertSvc,
	}
	usrApi := userApi{
		svc:        deps.UserSvc,
		registry:   deps.Registry,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	platform := platformTenantMiddleware(deps.Registry)
	tenantMW := tenantMiddleware(deps.Registry)

	// public, platform chrome
	pub := e.Group("", session, platform)
	pub.GET("/", api.home)
	pub.GET("/pricing", api.pricing)
	pub.GET("/login", api.loginPage)
	pub.POST("/login", usrApi.login, rateLimit)
	pub.GET("/logout", usrApi.logout)

	// guarded platform screens
	pg := e.Group("", session, platform, loginRequiredMiddleware)
	pg.GET("/dashboard", api.platformDashboard)
	pg.GET("/courses", api.platformCourses)
	pg.GET("/analytics", api.platformAnalytics)

	// platform administration, super admins only
	sa := e.Group("/super-admin", session, platform, loginRequiredMiddleware, superAdminMiddleware)
	sa.GET("/organizations", api.orgAdminList)
	sa.GET("/organizations/:org", api.orgAdminDetail)
	sa.GET("/organizations/:org/edit", api.orgAdminEdit)
	sa.GET("/organizations/:org/settings", api.orgAdminEdit)

	// public, organization chrome
	opub := e.Group("/:org", session, tenantMW)
	opub.GET("", api.orgLanding)
	opub.GET("/login", api.orgLoginPage)

	// guarded organization screens, admin chrome
	og := e.Group("/:org", session, tenantMW, loginRequiredMiddleware)
	og.GET("/dashboard", api.orgDashboard)
	og.GET("/courses", api.orgCourses)
	og.GET("/courses/:id", api.orgCourseDetail)
	og.GET("/courses/:id/edit", api.orgCourseEdit)
	og.GET("/courses/:id/settings", api.orgCourseSettings)
	og.GET("/courses/:id/analytics", api.orgCourseAnalytics)
	og.GET("/students", api.orgStudents)
	og.GET("/instructors", api.orgInstructors)
	og.GET("/certificates", api.orgCertificates)
	og.GET("/analytics", api.orgAnalytics)
	og.GET("/reports", api.orgReports)
	og.GET("/newsfeed", api.orgNewsfeed)
	og.GET("/settings", api.orgSettings)

	// guarded learner screens, learner chrome
	lg := og.Group("/learner")
	lg.GET("/dashboard", api.learnerDashboard)
	lg.GET("/courses", api.learnerCourses)
	lg.GET("/assessments", api.learnerAssessments)
	lg.GET("/paths", api.learnerPaths)
	lg.GET("/analytics", api.learnerAnalytics)
	lg.GET("/certificates", api.learnerCertificates)
}

// Public pages

func (api *pagesApi) home(ctx echo.Context) error {
	tenants, err := api.orgSvc.Query()
	if err != nil {
		return errors.Wrap(err, "querying organizations")
	}

	type orgCard struct {
		Key          string `json:"key"`
		Name         string `json:"name"`
		Acronym      string `json:"acronym"`
		Location     string `json:"location"`
		Plan         string `json:"plan"`
		PrimaryColor string `json:"primary_color"`
	}
	cards := make([]orgCard, 0, len(tenants))
	for _, t := range tenants {
		if t.IsPlatform() {
			continue
		}
		cards = append(cards, orgCard{
			Key:          t.Key,
			Name:         t.Name,
			Acronym:      t.Acronym,
			Location:     t.Location,
			Plan:         t.Plan,
			PrimaryColor: t.Branding.PrimaryColor,
		})
	}
	return renderPage(ctx, "home", echo.Map{"organizations": cards})
}

func (api *pagesApi) pricing(ctx echo.Context) error {
	return renderPage(ctx, "pricing", echo.Map{"plans": tenant.PlanTiers})
}

func (api *pagesApi) loginPage(ctx echo.Context) error {
	return renderPage(ctx, "login", echo.Map{"next": safeNextPath(ctx.QueryParam("next"))})
}

func (api *pagesApi) orgLanding(ctx echo.Context) error {
	t, err := getContextTenant(ctx)
	if err != nil {
		return err
	}
	return renderPage(ctx, "org-landing", echo.Map{"location": t.Location, "plan": t.Plan})
}

func (api *pagesApi) orgLoginPage(ctx echo.Context) error {
	t, err := getContextTenant(ctx)
	if err != nil {
		return err
	}
	return renderPage(ctx, "login", echo.Map{
		"org":  t.Key,
		"next": safeNextPath(ctx.QueryParam("next")),
	})
}

// Platform screens

func (api *pagesApi) platformDashboard(ctx echo.Context) error {
	tenants, err := api.orgSvc.Query()
	if err != nil {
		return errors.Wrap(err, "querying organizations")
	}
	users, err := api.userSvc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	courses, err := api.courseSvc.Query(course.QueryFilter{})
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return renderPage(ctx, "dashboard", echo.Map{
		"organization_count": len(tenants) - 1, // platform tenant excluded
		"user_count":         len(users),
		"course_count":       len(courses),
	})
}

func (api *pagesApi) platformCourses(ctx echo.Context) error {
	ctxUsr, _ := ctx.Get(contextUserKey).(user.User)
	filter := course.QueryFilter{}
	scopeCourseFilter(&filter, ctxUsr)

	courses, err := api.courseSvc.Query(filter)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return renderPage(ctx, "courses", echo.Map{"courses": courses})
}

func (api *pagesApi) platformAnalytics(ctx echo.Context) error {
	courses, err := api.courseSvc.Query(course.QueryFilter{})
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	var enrolled int
	for _, c := range courses {
		enrolled += c.EnrolledCount
	}
	return renderPage(ctx, "analytics", echo.Map{
		"course_count":     len(courses),
		"total_enrolled":   enrolled,
		"active_this_week": enrolled, // engagement tracking not wired yet
	})
}

// Super-admin organization screens

func (api *pagesApi) orgAdminList(ctx echo.Context) error {
	tenants, err := api.orgSvc.Query()
	if err != nil {
		return errors.Wrap(err, "querying organizations")
	}
	return renderPage(ctx, "super-admin/organizations", echo.Map{"organizations": tenants})
}

func (api *pagesApi) orgAdminDetail(ctx echo.Context) error {
	t, err := api.orgSvc.GetByKey(ctx.Param("org"))
	if err != nil {
		if errors.Cause(err) == tenant.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding organization by key")
	}
	return renderPage(ctx, "super-admin/organization", echo.Map{"organization": t})
}

func (api *pagesApi) orgAdminEdit(ctx echo.Context) error {
	t, err := api.orgSvc.GetByKey(ctx.Param("org"))
	if err != nil {
		if errors.Cause(err) == tenant.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding organization by key")
	}
	return renderPage(ctx, "super-admin/organization-edit", echo.Map{"organization": t})
}

// Organization admin screens

func (api *pagesApi) orgDashboard(ctx echo.Context) error {
	t, err := getContextTenant(ctx)
	if err != nil {
		return err
	}
	courses, err := api.courseSvc.Query(course.QueryFilter{TenantKey: t.Key})
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	students, err := api.userSvc.Filter(user.QueryFilter{TenantKey: t.Key, Roles: []string{user.RoleLearner}})
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	instructors, err := api.userSvc.Filter(user.QueryFilter{TenantKey: t.Key, Roles: []string{user.RoleInstructor}})
	if err != nil {
		return errors.Wrap(err, "querying instructors")
	}
	return renderPage(ctx, "org/dashboard", echo.Map{
		"course_count":     len(courses),
		"student_count":    len(students),
		"instructor_count": len(instructors),
	})
}

func (api *pagesApi) orgCourses(ctx echo.Context) error {
	t, err := getContextTenant(ctx)
	if err != nil {
		return err
	}
	ctxUsr, _ := ctx.Get(contextUserKey).(user.User)

	filter := course.QueryFilter{
		TenantKey: t.Key,
		Status:    ctx.QueryParam("status"),
		Search:    ctx.QueryParam("search"),
	}
	filter.Clean()
	if ctxUsr.IsInstructor() && !(ctxUsr.IsOrgAdmin() || ctxUsr.IsSuperAdmin()) {
		filter.InstructorID = ctxUsr.ID
	}

	courses, err := api.courseSvc.Query(filter)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return renderPage(ctx, "org/courses", echo.Map{"courses": courses})
}

func (api *pagesApi) orgCourseDetail(ctx echo.Context) error {
	c, err := api.getTenantCourse(ctx)
	if err != nil {
		return err
	}
	return renderPage(ctx, "org/course", echo.Map{"course": c})
}

func (api *pagesApi) orgCourseEdit(ctx echo.Context) error {
	c, err := api.getTenantCourse(ctx)
	if err != nil {
		return err
	}
	return renderPage(ctx, "org/course-edit", echo.Map{"course": c})
}

func (api *pagesApi) orgCourseSettings(ctx echo.Context) error {
	c, err := api.getTenantCourse(ctx)
	if err != nil {
		return err
	}
	return renderPage(ctx, "org/course-settings", echo.Map{"course": c})
}

func (api *pagesApi) orgCourseAnalytics(ctx echo.Context) error {
	c, err := api.getTenantCourse(ctx)
	if err != nil {
		return err
	}
	return renderPage(ctx, "org/course-analytics", echo.Map{
		"course_id":      c.ID,
		"enrolled_count": c.EnrolledCount,
		"status":         c.Status,
	})
}

func (api *pagesApi) getTenantCourse(ctx echo.Context) (course.Course, error) {
	t, err := getContextTenant(ctx)
	if err != nil {
		return course.Course{}, err
	}
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return course.Course{}, errHttpNotFound
	}
	c, err := api.courseSvc.GetByID(id)
	if err != nil || c.TenantKey != t.Key {
		return course.Course{}, errHttpNotFound
	}
	return c, nil
}

func (api *pagesApi) orgStudents(ctx echo.Context) error {
	return api.orgUserList(ctx, "org/students", user.RoleLearner)
}

func (api *pagesApi) orgInstructors(ctx echo.Context) error {
	return api.orgUserList(ctx, "org/instructors", user.RoleInstructor)
}

func (api *pagesApi) orgUserList(ctx echo.Context, page, role string) error {
	t, err := getContextTenant(ctx)
	if err != nil {
		return err
	}
	users, err := api.userSvc.Filter(user.QueryFilter{TenantKey: t.Key, Roles: []string{role}})
	if err != nil {
		return errors.Wrap(err, "querying users")
	}
	return renderPage(ctx, page, echo.Map{"users": users})
}

func (api *pagesApi) orgCertificates(ctx echo.Context) error {
	t, err := getContextTenant(ctx)
	if err != nil {
		return err
	}
	certs, err := api.certSvc.Filter(certificate.QueryFilter{TenantKey: t.Key})
	if err != nil {
		return errors.Wrap(err, "querying certificates")
	}
	return renderPage(ctx, "org/certificates", echo.Map{"certificates": certs})
}

func (api *pagesApi) orgAnalytics(ctx echo.Context) error {
	t, err := getContextTenant(ctx)
	if err != nil {
		return err
	}
	courses, err := api.courseSvc.Query(course.QueryFilter{TenantKey: t.Key})
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	var enrolled, published int
	for _, c := range courses {
		enrolled += c.EnrolledCount
		if c.Status == course.StatusPublished {
			published++
		}
	}
	return renderPage(ctx, "org/analytics", echo.Map{
		"course_count":    len(courses),
		"published_count": published,
		"total_enrolled":  enrolled,
	})
}

func (api *pagesApi) orgReports(ctx echo.Context) error {
	t, err := getContextTenant(ctx)
	if err != nil {
		return err
	}
	certs, err := api.certSvc.Filter(certificate.QueryFilter{TenantKey: t.Key})
	if err != nil {
		return errors.Wrap(err, "querying certificates")
	}
	return renderPage(ctx, "org/reports", echo.Map{
		"completions_this_month": len(certs),
		"generated_at":           time.Now().UTC(),
	})
}

func (api *pagesApi) orgNewsfeed(ctx echo.Context) error {
	t, err := getContextTenant(ctx)
	if err != nil {
		return err
	}
	// placeholder feed until announcements land
	return renderPage(ctx, "org/newsfeed", echo.Map{
		"items": []echo.Map{
			{"title": "Welcome to " + t.Name, "posted_at": t.CreatedAt},
		},
	})
}

func (api *pagesApi) orgSettings(ctx echo.Context) error {
	t, err := getContextTenant(ctx)
	if err != nil {
		return err
	}
	return renderPage(ctx, "org/settings", echo.Map{"organization": t})
}

// Learner screens

func (api *pagesApi) learnerDashboard(ctx echo.Context) error {
	t, err := getContextTenant(ctx)
	if err != nil {
		return err
	}
	ctxUsr, _ := ctx.Get(contextUserKey).(user.User)

	courses, err := api.courseSvc.ForLearner(t.Key, ctxUsr.ID)
	if err != nil {
		return errors.Wrap(err, "querying learner courses")
	}
	var completed int
	for _, c := range courses {
		if c.CompletedAt != nil {
			completed++
		}
	}
	return renderPage(ctx, "learner/dashboard", echo.Map{
		"enrolled_count":  len(courses),
		"completed_count": completed,
		"courses":         courses,
	})
}

func (api *pagesApi) learnerCourses(ctx echo.Context) error {
	t, err := getContextTenant(ctx)
	if err != nil {
		return err
	}
	ctxUsr, _ := ctx.Get(contextUserKey).(user.User)

	courses, err := api.courseSvc.ForLearner(t.Key, ctxUsr.ID)
	if err != nil {
		return errors.Wrap(err, "querying learner courses")
	}
	return renderPage(ctx, "learner/courses", echo.Map{"courses": courses})
}

func (api *pagesApi) learnerAssessments(ctx echo.Context) error {
	t, err := getContextTenant(ctx)
	if err != nil {
		return err
	}
	assessments, err := api.courseSvc.Assessments(t.Key)
	if err != nil {
		return errors.Wrap(err, "querying assessments")
	}
	return renderPage(ctx, "learner/assessments", echo.Map{"assessments": assessments})
}

func (api *pagesApi) learnerPaths(ctx echo.Context) error {
	t, err := getContextTenant(ctx)
	if err != nil {
		return err
	}
	paths, err := api.courseSvc.LearningPaths(t.Key)
	if err != nil {
		return errors.Wrap(err, "querying learning paths")
	}
	return renderPage(ctx, "learner/paths", echo.Map{"paths": paths})
}

func (api *pagesApi) learnerAnalytics(ctx echo.Context) error {
	t, err := getContextTenant(ctx)
	if err != nil {
		return err
	}
	ctxUsr, _ := ctx.Get(contextUserKey).(user.User)

	courses, err := api.courseSvc.ForLearner(t.Key, ctxUsr.ID)
	if err != nil {
		return errors.Wrap(err, "querying learner courses")
	}
	var progress int
	for _, c := range courses {
		progress += c.Progress
	}
	if len(courses) > 0 {
		progress /= len(courses)
	}
	return renderPage(ctx, "learner/analytics", echo.Map{
		"enrolled_count":   len(courses),
		"average_progress": progress,
	})
}

func (api *pagesApi) learnerCertificates(ctx echo.Context) error {
	t, err := getContextTenant(ctx)
	if err != nil {
		return err
	}
	ctxUsr, _ := ctx.Get(contextUserKey).(user.User)

	certs, err := api.certSvc.Filter(certificate.QueryFilter{TenantKey: t.Key, LearnerID: ctxUsr.ID})
	if err != nil {
		return errors.Wrap(err, "querying certificates")
	}
	return renderPage(ctx, "learner/certificates", echo.Map{"certificates": certs})
}
