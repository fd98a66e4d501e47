package certificate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// errors
	ErrNotFound = errors.New("certificate not found")
)

type (
	Repository interface {
		CreateCertificate(c Certificate) (Certificate, error)
		GetCertificateBySerial(serial string) (Certificate, error)
		// FilterCertificates applies AND operation on available QueryFilter fields.
		FilterCertificates(filter QueryFilter) ([]Certificate, error)
	}

	ServiceInterface interface {
		Issue(nc NewCertificate) (Certificate, error)
		GetBySerial(serial string) (Certificate, error)
		Filter(filter QueryFilter) ([]Certificate, error)
	}

	service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*service)(nil)

func NewService(repo Repository) ServiceInterface {
	return &service{repo: repo}
}

func (svc *service) Issue(nc NewCertificate) (Certificate, error) {
	id := uuid.New()
	c := Certificate{
		ID:          id.String(),
		Serial:      makeSerial(id),
		TenantKey:   nc.TenantKey,
		CourseID:    nc.CourseID,
		CourseTitle: nc.CourseTitle,
		LearnerID:   nc.LearnerID,
		LearnerName: nc.LearnerName,
		IssuedAt:    time.Now().UTC(),
	}
	return svc.repo.CreateCertificate(c)
}

func (svc *service) GetBySerial(serial string) (Certificate, error) {
	return svc.repo.GetCertificateBySerial(strings.ToUpper(strings.TrimSpace(serial)))
}

func (svc *service) Filter(filter QueryFilter) ([]Certificate, error) {
	return svc.repo.FilterCertificates(filter)
}

// makeSerial derives the short verification code printed on the certificate.
func makeSerial(id uuid.UUID) string {
	hex := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return fmt.Sprintf("DRS-%s-%s", hex[:4], hex[4:8])
}
