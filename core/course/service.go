package course

import (
	"errors"
	"fmt"
	"time"

	"github.com/darasahub/darasa/core"
)

var (
	// errors
	ErrNotFound = errors.New("course not found")
)

type (
	Repository interface {
		CreateCourse(c Course) (Course, error)
		GetCourseByID(id int) (Course, error)
		GetCourseBySlug(tenantKey, slug string) (Course, error)
		// FilterCourses applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on Course.Title.
		FilterCourses(filter QueryFilter) ([]Course, error)
		UpdateCourse(c Course) (Course, error)
		DeleteCoursesByID(ids ...int) error

		FilterAssessments(tenantKey string) ([]Assessment, error)
		FilterLearningPaths(tenantKey string) ([]LearningPath, error)
		FilterEnrollments(tenantKey string, learnerID int) ([]Enrollment, error)
	}

	ServiceInterface interface {
		Create(nc NewCourse, instructorName string) (Course, error)
		GetByID(id int) (Course, error)
		Query(filter QueryFilter) ([]Course, error)
		Update(id int, uc UpdateCourse) (Course, error)
		Delete(ids ...int) error
		Assessments(tenantKey string) ([]Assessment, error)
		LearningPaths(tenantKey string) ([]LearningPath, error)
		// ForLearner joins a tenant's published courses with the learner's enrollments.
		ForLearner(tenantKey string, learnerID int) ([]LearnerCourse, error)
	}

	service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository) ServiceInterface {
	return &service{repo: repo}
}

func (svc *service) Create(nc NewCourse, instructorName string) (Course, error) {
	now := time.Now().UTC()
	status := nc.Status
	if status == "" {
		status = StatusDraft
	}
	c := Course{
		TenantKey:      nc.TenantKey,
		Slug:           svc.uniqueSlug(nc.TenantKey, nc.Title),
		Title:          nc.Title,
		Description:    nc.Description,
		InstructorID:   nc.InstructorID,
		InstructorName: instructorName,
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return svc.repo.CreateCourse(c)
}

// uniqueSlug derives a slug from the title, suffixing a counter on collision
// within the same organization.
func (svc *service) uniqueSlug(tenantKey, title string) string {
	slug := core.Slugify(title)
	if slug == "" {
		slug = "course"
	}
	candidate := slug
	for i := 2; ; i++ {
		if _, err := svc.repo.GetCourseBySlug(tenantKey, candidate); err != nil {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", slug, i)
	}
}

func (svc *service) GetByID(id int) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

func (svc *service) Query(filter QueryFilter) ([]Course, error) {
	return svc.repo.FilterCourses(filter)
}

func (svc *service) Update(id int, uc UpdateCourse) (Course, error) {
	c, err := svc.repo.GetCourseByID(id)
	if err != nil {
		return Course{}, err
	}
	if uc.Title != "" {
		c.Title = uc.Title
	}
	if uc.Description != "" {
		c.Description = uc.Description
	}
	if uc.Status != "" {
		c.Status = uc.Status
	}
	c.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateCourse(c)
}

func (svc *service) Delete(ids ...int) error {
	return svc.repo.DeleteCoursesByID(ids...)
}

func (svc *service) Assessments(tenantKey string) ([]Assessment, error) {
	return svc.repo.FilterAssessments(tenantKey)
}

func (svc *service) LearningPaths(tenantKey string) ([]LearningPath, error) {
	return svc.repo.FilterLearningPaths(tenantKey)
}

func (svc *service) ForLearner(tenantKey string, learnerID int) ([]LearnerCourse, error) {
	enrollments, err := svc.repo.FilterEnrollments(tenantKey, learnerID)
	if err != nil {
		return nil, err
	}

	courses := make([]LearnerCourse, 0, len(enrollments))
	for _, enr := range enrollments {
		c, err := svc.repo.GetCourseByID(enr.CourseID)
		if err != nil {
			if err == ErrNotFound {
				continue
			}
			return nil, err
		}
		courses = append(courses, LearnerCourse{Course: c, Progress: enr.Progress, CompletedAt: enr.CompletedAt})
	}
	return courses, nil
}
