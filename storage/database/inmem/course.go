package inmemdb

import (
	"sort"
	"strings"

	"github.com/darasahub/darasa/core/course"
)

type courseRepository struct {
	db *DB
}

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

// query snapshots the table; callers must hold at least a read lock.
func (repo *courseRepository) query() []course.Course {
	courses := make([]course.Course, 0, len(repo.db.courses))
	for _, c := range repo.db.courses {
		courses = append(courses, *c)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses
}

func (repo *courseRepository) CreateCourse(c course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.coursePK++
	c.ID = repo.db.coursePK
	repo.db.courses[c.ID] = &c
	return c, nil
}

func (repo *courseRepository) GetCourseByID(id int) (course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.db.courses[id]; ok {
		return *c, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) GetCourseBySlug(tenantKey, slug string) (course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, c := range repo.db.courses {
		if c.TenantKey == tenantKey && c.Slug == slug {
			return *c, nil
		}
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) FilterCourses(filter course.QueryFilter) ([]course.Course, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	matches := make([]course.Course, 0)
	for _, c := range repo.query() {
		if filter.TenantKey != "" && c.TenantKey != filter.TenantKey {
			continue
		}
		if filter.InstructorID > 0 && c.InstructorID != filter.InstructorID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Title), strings.ToLower(filter.Search)) {
			continue
		}
		matches = append(matches, c)
	}
	return matches, nil
}

func (repo *courseRepository) UpdateCourse(c course.Course) (course.Course, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.courses[c.ID]; !ok {
		return course.Course{}, course.ErrNotFound
	}
	repo.db.courses[c.ID] = &c
	return c, nil
}

func (repo *courseRepository) DeleteCoursesByID(ids ...int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()
	for _, id := range ids {
		delete(repo.db.courses, id)
	}
	return nil
}

func (repo *courseRepository) FilterAssessments(tenantKey string) ([]course.Assessment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	matches := make([]course.Assessment, 0)
	for _, a := range repo.db.assessments {
		if a.TenantKey == tenantKey {
			matches = append(matches, *a)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (repo *courseRepository) FilterLearningPaths(tenantKey string) ([]course.LearningPath, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	matches := make([]course.LearningPath, 0)
	for _, p := range repo.db.learningPaths {
		if p.TenantKey == tenantKey {
			matches = append(matches, *p)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (repo *courseRepository) FilterEnrollments(tenantKey string, learnerID int) ([]course.Enrollment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	matches := make([]course.Enrollment, 0)
	for _, e := range repo.db.enrollments {
		if e.TenantKey != tenantKey {
			continue
		}
		if learnerID > 0 && e.LearnerID != learnerID {
			continue
		}
		matches = append(matches, *e)
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

// CreateAssessment, CreateLearningPath and CreateEnrollment are used by fixtures.

func (repo *courseRepository) CreateAssessment(a course.Assessment) (course.Assessment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.assessmentPK++
	a.ID = repo.db.assessmentPK
	repo.db.assessments[a.ID] = &a
	return a, nil
}

func (repo *courseRepository) CreateLearningPath(p course.LearningPath) (course.LearningPath, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.pathPK++
	p.ID = repo.db.pathPK
	repo.db.learningPaths[p.ID] = &p
	return p, nil
}

func (repo *courseRepository) CreateEnrollment(e course.Enrollment) (course.Enrollment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.enrollmentPK++
	e.ID = repo.db.enrollmentPK
	repo.db.enrollments[e.ID] = &e

	if c, ok := repo.db.courses[e.CourseID]; ok {
		c.EnrolledCount++
	}
	return e, nil
}
