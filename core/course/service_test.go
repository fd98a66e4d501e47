package course_test

import (
	"testing"

	"github.com/darasahub/darasa/core/course"
	inmemdb "github.com/darasahub/darasa/storage/database/inmem"
)

func newTestService(t *testing.T, seed bool) course.ServiceInterface {
	t.Helper()
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	if seed {
		if err = inmemdb.Seed(db); err != nil {
			t.Fatalf("seeding db: %v", err)
		}
	}
	return course.NewService(inmemdb.NewCourseRepository(db))
}

func TestCreateUniqueSlug(t *testing.T) {
	svc := newTestService(t, false)

	c1, err := svc.Create(course.NewCourse{Title: "Go 101", TenantKey: "stanford"}, "Bob Mwangi")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if c1.Slug != "go-101" {
		t.Errorf("Slug = %q, want %q", c1.Slug, "go-101")
	}
	if c1.Status != course.StatusDraft {
		t.Errorf("Status = %q, want %q", c1.Status, course.StatusDraft)
	}

	// same title in the same organization gets a counter suffix
	c2, err := svc.Create(course.NewCourse{Title: "Go 101", TenantKey: "stanford"}, "Bob Mwangi")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if c2.Slug != "go-101-2" {
		t.Errorf("Slug = %q, want %q", c2.Slug, "go-101-2")
	}

	// slugs are scoped per organization
	c3, err := svc.Create(course.NewCourse{Title: "Go 101", TenantKey: "mit"}, "David Okoth")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if c3.Slug != "go-101" {
		t.Errorf("Slug = %q, want %q", c3.Slug, "go-101")
	}
}

func TestQueryFilters(t *testing.T) {
	svc := newTestService(t, true)

	courses, err := svc.Query(course.QueryFilter{TenantKey: "stanford"})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(courses) != 3 {
		t.Errorf("Query(stanford) returned %d courses, want 3", len(courses))
	}

	courses, err = svc.Query(course.QueryFilter{TenantKey: "stanford", Status: course.StatusPublished})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(courses) != 2 {
		t.Errorf("Query(stanford, published) returned %d courses, want 2", len(courses))
	}

	courses, err = svc.Query(course.QueryFilter{Search: "learning"})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(courses) != 1 || courses[0].Slug != "machine-learning-101" {
		t.Errorf("Query(search=learning) = %+v, want machine-learning-101 only", courses)
	}
}

func TestUpdate(t *testing.T) {
	svc := newTestService(t, true)

	c, err := svc.Update(3, course.UpdateCourse{Status: course.StatusPublished})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if c.Status != course.StatusPublished {
		t.Errorf("Status = %q, want %q", c.Status, course.StatusPublished)
	}
	if c.Title != "Compilers" {
		t.Errorf("Title = %q, unset fields must be kept", c.Title)
	}

	if _, err = svc.Update(999, course.UpdateCourse{Title: "Nope"}); err != course.ErrNotFound {
		t.Errorf("Update(999) error = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	svc := newTestService(t, true)

	if err := svc.Delete(1, 2); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := svc.GetByID(1); err != course.ErrNotFound {
		t.Errorf("GetByID(1) error = %v, want ErrNotFound", err)
	}

	courses, err := svc.Query(course.QueryFilter{TenantKey: "stanford"})
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	if len(courses) != 1 {
		t.Errorf("Query(stanford) returned %d courses after delete, want 1", len(courses))
	}
}

func TestForLearner(t *testing.T) {
	svc := newTestService(t, true)

	// carolbanza (stanford learner) is enrolled in two courses, one completed
	courses, err := svc.ForLearner("stanford", 4)
	if err != nil {
		t.Fatalf("ForLearner() failed: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("ForLearner() returned %d courses, want 2", len(courses))
	}

	var completed int
	for _, c := range courses {
		if c.CompletedAt != nil {
			completed++
			if c.Progress != 100 {
				t.Errorf("completed course has progress %d, want 100", c.Progress)
			}
		}
	}
	if completed != 1 {
		t.Errorf("ForLearner() returned %d completed courses, want 1", completed)
	}

	// learners never see another organization's enrollments
	courses, err = svc.ForLearner("mit", 4)
	if err != nil {
		t.Fatalf("ForLearner() failed: %v", err)
	}
	if len(courses) != 0 {
		t.Errorf("ForLearner(mit, 4) returned %d courses, want 0", len(courses))
	}
}

func TestAssessmentsAndPaths(t *testing.T) {
	svc := newTestService(t, true)

	assessments, err := svc.Assessments("stanford")
	if err != nil {
		t.Fatalf("Assessments() failed: %v", err)
	}
	if len(assessments) != 2 {
		t.Errorf("Assessments(stanford) returned %d, want 2", len(assessments))
	}

	paths, err := svc.LearningPaths("stanford")
	if err != nil {
		t.Fatalf("LearningPaths() failed: %v", err)
	}
	if len(paths) != 1 || len(paths[0].CourseIDs) != 2 {
		t.Errorf("LearningPaths(stanford) = %+v, want one path with two courses", paths)
	}
}
