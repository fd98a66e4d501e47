package inmemdb

import (
	"sync"

	"github.com/darasahub/darasa/core/certificate"
	"github.com/darasahub/darasa/core/course"
	"github.com/darasahub/darasa/core/tenant"
	"github.com/darasahub/darasa/core/user"
)

// DB is the in-memory database backing all repositories.
// All access goes through the shared RWMutex; repositories never hand out
// pointers into the tables.
type DB struct {
	mutex sync.RWMutex

	tenants       map[string]*tenant.Tenant
	users         map[int]*user.User
	courses       map[int]*course.Course
	assessments   map[int]*course.Assessment
	learningPaths map[int]*course.LearningPath
	enrollments   map[int]*course.Enrollment
	certificates  map[string]*certificate.Certificate

	userPK       int
	coursePK     int
	assessmentPK int
	pathPK       int
	enrollmentPK int
}

func Open() (*DB, error) {
	return &DB{
		tenants:       make(map[string]*tenant.Tenant),
		users:         make(map[int]*user.User),
		courses:       make(map[int]*course.Course),
		assessments:   make(map[int]*course.Assessment),
		learningPaths: make(map[int]*course.LearningPath),
		enrollments:   make(map[int]*course.Enrollment),
		certificates:  make(map[string]*certificate.Certificate),
	}, nil
}

func (db *DB) Close() error { return nil }
