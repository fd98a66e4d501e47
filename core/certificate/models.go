package certificate

import "time"

// Certificate records a credential issued to a learner for completing a course.
type Certificate struct {
	ID          string    `json:"id"`     // uuid
	Serial      string    `json:"serial"` // human-facing verification code
	TenantKey   string    `json:"tenant_key"`
	CourseID    int       `json:"course_id"`
	CourseTitle string    `json:"course_title"`
	LearnerID   int       `json:"learner_id"`
	LearnerName string    `json:"learner_name"`
	IssuedAt    time.Time `json:"issued_at"` // UTC
}

// NewCertificate contains information needed to issue a Certificate.
type NewCertificate struct {
	TenantKey   string
	CourseID    int
	CourseTitle string
	LearnerID   int
	LearnerName string
}

type QueryFilter struct {
	TenantKey string
	LearnerID int
}
