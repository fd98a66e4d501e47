package inmemdb

import (
	"time"

	"github.com/pkg/errors"

	"github.com/darasahub/darasa/core/certificate"
	"github.com/darasahub/darasa/core/course"
	"github.com/darasahub/darasa/core/tenant"
	"github.com/darasahub/darasa/core/user"
)

// DemoPassword is the password shared by all seeded demo accounts.
const DemoPassword = "D3mo!Darasa"

// Seed loads the static organization table and a set of demo accounts,
// courses and enrollments so a fresh instance is browsable out of the box.
func Seed(db *DB) error {
	now := time.Now().UTC()

	tenantRepo := &tenantRepository{db: db}
	for _, t := range tenant.Defaults() {
		if _, err := tenantRepo.CreateTenant(t); err != nil {
			return errors.Wrapf(err, "seeding organization %s", t.Key)
		}
	}

	userRepo := &userRepository{db: db}
	seedUsers := []struct {
		tenantKey string
		name      string
		username  string
		email     string
		roles     []string
	}{
		{tenant.PlatformKey, "Root Admin", "rootadmin", "root@darasa.io", []string{user.RoleSuperAdmin}},
		{"stanford", "Alice Carter", "alicecarter", "alice@stanford.edu", []string{user.RoleOrgAdmin}},
		{"stanford", "Bob Mwangi", "bobmwangi", "bob@stanford.edu", []string{user.RoleInstructor}},
		{"stanford", "Carol Banza", "carolbanza", "carol@stanford.edu", []string{user.RoleLearner}},
		{"mit", "David Okoth", "davidokoth", "david@mit.edu", []string{user.RoleOrgAdmin, user.RoleInstructor}},
		{"mit", "Esther Nala", "esthernala", "esther@mit.edu", []string{user.RoleLearner}},
		{"makerere", "Frank Ssemakula", "frankssema", "frank@mak.ac.ug", []string{user.RoleInstructor}},
		{"makerere", "Grace Nabirye", "gracenabirye", "grace@mak.ac.ug", []string{user.RoleLearner}},
		{"unikin", "Henri Kabila", "henrikabila", "henri@unikin.cd", []string{user.RoleLearner}},
	}

	users := make(map[string]user.User, len(seedUsers))
	for _, su := range seedUsers {
		usr := user.User{
			TenantKey: su.tenantKey,
			Name:      su.name,
			Username:  su.username,
			Email:     su.email,
			IsActive:  true,
			Roles:     su.roles,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := usr.SetPassword(DemoPassword); err != nil {
			return errors.Wrapf(err, "hashing password for %s", su.username)
		}
		created, err := userRepo.CreateUser(usr)
		if err != nil {
			return errors.Wrapf(err, "seeding user %s", su.username)
		}
		users[su.username] = created
	}

	courseRepo := &courseRepository{db: db}
	seedCourses := []course.Course{
		{
			TenantKey: "stanford", Slug: "intro-to-algorithms", Title: "Intro to Algorithms",
			Description:  "Sorting, searching and graph basics.",
			InstructorID: users["bobmwangi"].ID, InstructorName: users["bobmwangi"].Name,
			Status: course.StatusPublished, LessonCount: 12, CreatedAt: now, UpdatedAt: now,
		},
		{
			TenantKey: "stanford", Slug: "machine-learning-101", Title: "Machine Learning 101",
			Description:  "Supervised learning from the ground up.",
			InstructorID: users["bobmwangi"].ID, InstructorName: users["bobmwangi"].Name,
			Status: course.StatusPublished, LessonCount: 9, CreatedAt: now, UpdatedAt: now,
		},
		{
			TenantKey: "stanford", Slug: "compilers", Title: "Compilers",
			Description:  "Lexing, parsing and code generation.",
			InstructorID: users["bobmwangi"].ID, InstructorName: users["bobmwangi"].Name,
			Status: course.StatusDraft, LessonCount: 4, CreatedAt: now, UpdatedAt: now,
		},
		{
			TenantKey: "mit", Slug: "linear-algebra", Title: "Linear Algebra",
			Description:  "Vectors, matrices and eigenvalues.",
			InstructorID: users["davidokoth"].ID, InstructorName: users["davidokoth"].Name,
			Status: course.StatusPublished, LessonCount: 15, CreatedAt: now, UpdatedAt: now,
		},
		{
			TenantKey: "makerere", Slug: "public-health-basics", Title: "Public Health Basics",
			Description:  "Epidemiology fundamentals.",
			InstructorID: users["frankssema"].ID, InstructorName: users["frankssema"].Name,
			Status: course.StatusPublished, LessonCount: 7, CreatedAt: now, UpdatedAt: now,
		},
	}

	courses := make(map[string]course.Course, len(seedCourses))
	for _, c := range seedCourses {
		created, err := courseRepo.CreateCourse(c)
		if err != nil {
			return errors.Wrapf(err, "seeding course %s", c.Slug)
		}
		courses[c.Slug] = created
	}

	seedAssessments := []course.Assessment{
		{
			TenantKey: "stanford", CourseID: courses["intro-to-algorithms"].ID,
			Title: "Sorting Quiz", Kind: course.KindQuiz, QuestionCount: 10, PassScore: 60,
			DueAt: now.AddDate(0, 0, 14),
		},
		{
			TenantKey: "stanford", CourseID: courses["machine-learning-101"].ID,
			Title: "Regression Assignment", Kind: course.KindAssignment, QuestionCount: 4, PassScore: 50,
			DueAt: now.AddDate(0, 0, 21),
		},
		{
			TenantKey: "mit", CourseID: courses["linear-algebra"].ID,
			Title: "Midterm Exam", Kind: course.KindExam, QuestionCount: 20, PassScore: 70,
			DueAt: now.AddDate(0, 1, 0),
		},
	}
	for _, a := range seedAssessments {
		if _, err := courseRepo.CreateAssessment(a); err != nil {
			return errors.Wrapf(err, "seeding assessment %s", a.Title)
		}
	}

	seedPaths := []course.LearningPath{
		{
			TenantKey: "stanford", Title: "Computer Science Core",
			Description: "The foundational CS sequence.",
			CourseIDs:   []int{courses["intro-to-algorithms"].ID, courses["machine-learning-101"].ID},
		},
	}
	for _, p := range seedPaths {
		if _, err := courseRepo.CreateLearningPath(p); err != nil {
			return errors.Wrapf(err, "seeding learning path %s", p.Title)
		}
	}

	completedAt := now.AddDate(0, 0, -3)
	seedEnrollments := []course.Enrollment{
		{
			TenantKey: "stanford", CourseID: courses["intro-to-algorithms"].ID,
			LearnerID: users["carolbanza"].ID, Progress: 100,
			EnrolledAt: now.AddDate(0, -2, 0), CompletedAt: &completedAt,
		},
		{
			TenantKey: "stanford", CourseID: courses["machine-learning-101"].ID,
			LearnerID: users["carolbanza"].ID, Progress: 40,
			EnrolledAt: now.AddDate(0, -1, 0),
		},
		{
			TenantKey: "mit", CourseID: courses["linear-algebra"].ID,
			LearnerID: users["esthernala"].ID, Progress: 65,
			EnrolledAt: now.AddDate(0, -1, -10),
		},
		{
			TenantKey: "makerere", CourseID: courses["public-health-basics"].ID,
			LearnerID: users["gracenabirye"].ID, Progress: 10,
			EnrolledAt: now.AddDate(0, 0, -5),
		},
	}
	for _, e := range seedEnrollments {
		if _, err := courseRepo.CreateEnrollment(e); err != nil {
			return errors.Wrapf(err, "seeding enrollment for course %d", e.CourseID)
		}
	}

	certSvc := certificate.NewService(&certificateRepository{db: db})
	if _, err := certSvc.Issue(certificate.NewCertificate{
		TenantKey:   "stanford",
		CourseID:    courses["intro-to-algorithms"].ID,
		CourseTitle: courses["intro-to-algorithms"].Title,
		LearnerID:   users["carolbanza"].ID,
		LearnerName: users["carolbanza"].Name,
	}); err != nil {
		return errors.Wrap(err, "seeding certificate")
	}

	return nil
}
