package inmemdb

import (
	"sort"

	"github.com/darasahub/darasa/core/certificate"
)

type certificateRepository struct {
	db *DB
}

func NewCertificateRepository(db *DB) certificate.Repository {
	return &certificateRepository{db: db}
}

func (repo *certificateRepository) CreateCertificate(c certificate.Certificate) (certificate.Certificate, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.certificates[c.ID] = &c
	return c, nil
}

func (repo *certificateRepository) GetCertificateBySerial(serial string) (certificate.Certificate, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, c := range repo.db.certificates {
		if c.Serial == serial {
			return *c, nil
		}
	}
	return certificate.Certificate{}, certificate.ErrNotFound
}

func (repo *certificateRepository) FilterCertificates(filter certificate.QueryFilter) ([]certificate.Certificate, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	matches := make([]certificate.Certificate, 0)
	for _, c := range repo.db.certificates {
		if filter.TenantKey != "" && c.TenantKey != filter.TenantKey {
			continue
		}
		if filter.LearnerID > 0 && c.LearnerID != filter.LearnerID {
			continue
		}
		matches = append(matches, *c)
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].IssuedAt.Equal(matches[j].IssuedAt) {
			return matches[i].Serial < matches[j].Serial
		}
		return matches[i].IssuedAt.Before(matches[j].IssuedAt)
	})
	return matches, nil
}
