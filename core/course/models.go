package course

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/darasahub/darasa/core"
)

// Course statuses
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Assessment kinds
const (
	KindQuiz       = "quiz"
	KindExam       = "exam"
	KindAssignment = "assignment"
)

type Course struct {
	ID             int       `json:"id"`
	TenantKey      string    `json:"tenant_key"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	InstructorID   int       `json:"instructor_id"`
	InstructorName string    `json:"instructor_name"`
	Status         string    `json:"status"`
	EnrolledCount  int       `json:"enrolled_count"`
	LessonCount    int       `json:"lesson_count"`
	CreatedAt      time.Time `json:"created_at"` // UTC
	UpdatedAt      time.Time `json:"updated_at"` // UTC
}

type Assessment struct {
	ID            int       `json:"id"`
	TenantKey     string    `json:"tenant_key"`
	CourseID      int       `json:"course_id"`
	Title         string    `json:"title"`
	Kind          string    `json:"kind"`
	QuestionCount int       `json:"question_count"`
	PassScore     int       `json:"pass_score"`
	DueAt         time.Time `json:"due_at"`
}

type LearningPath struct {
	ID          int    `json:"id"`
	TenantKey   string `json:"tenant_key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CourseIDs   []int  `json:"course_ids"`
}

type Enrollment struct {
	ID          int        `json:"id"`
	TenantKey   string     `json:"tenant_key"`
	CourseID    int        `json:"course_id"`
	LearnerID   int        `json:"learner_id"`
	Progress    int        `json:"progress"` // 0 - 100
	EnrolledAt  time.Time  `json:"enrolled_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// LearnerCourse is a course joined with the learner's own enrollment.
type LearnerCourse struct {
	Course
	Progress    int        `json:"progress"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewCourse contains information needed to create a new Course.
// TenantKey and InstructorID are supplied by the routing layer, not the client.
type NewCourse struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	Status       string `json:"status" validate:"omitempty,oneof=draft published archived"`
	InstructorID int    `json:"instructor_id" validate:"omitempty,min=1"`
	TenantKey    string `json:"-"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	nc.Status = core.CleanString(nc.Status, true /* lower */)
	return validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
type UpdateCourse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=draft published archived"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate) error {
	uc.Title = core.CleanString(uc.Title)
	uc.Description = core.CleanString(uc.Description)
	uc.Status = core.CleanString(uc.Status, true /* lower */)
	return validate.Struct(uc)
}

type QueryFilter struct {
	TenantKey    string `query:"-"`
	InstructorID int    `query:"-"`
	Status       string `query:"status"`
	Search       string `query:"search"`
}

func (qf *QueryFilter) Clean() {
	qf.Status = core.CleanString(qf.Status, true /* lower */)
	qf.Search = core.CleanString(qf.Search)
}
