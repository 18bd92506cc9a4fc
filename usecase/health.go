package usecase

import (
	"context"
	"time"

	"gorm.io/gorm"

	domainCache "github.com/creatorlens/backend/domains/cache"
	domainHealth "github.com/creatorlens/backend/domains/health"
)

type healthService struct {
	store         domainCache.Store
	db            *gorm.DB
	serpReady     bool
	generateReady bool
}

func NewHealthService(store domainCache.Store, db *gorm.DB, serpReady, generateReady bool) domainHealth.IHealthUsecase {
	return &healthService{store: store, db: db, serpReady: serpReady, generateReady: generateReady}
}

// Check probes each component. A dead cache only degrades the service
// (reads bypass it), so it never reports ERROR.
func (s *healthService) Check(ctx context.Context) []domainHealth.Record {
	now := time.Now().UTC()
	records := make([]domainHealth.Record, 0, 4)

	cacheStatus := domainHealth.StatusOk
	cacheMsg := ""
	if s.store == nil || !s.store.HealthCheck(ctx) {
		cacheStatus = domainHealth.StatusDegraded
		cacheMsg = "cache unreachable, reads fall through to providers"
	}
	records = append(records, domainHealth.Record{
		Component: domainHealth.ComponentCache, Status: cacheStatus, Message: cacheMsg, CheckedAt: now,
	})

	dbStatus := domainHealth.StatusOk
	dbMsg := ""
	if s.db == nil {
		dbStatus = domainHealth.StatusError
		dbMsg = "database not initialized"
	} else if sqlDB, err := s.db.DB(); err != nil {
		dbStatus = domainHealth.StatusError
		dbMsg = err.Error()
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = domainHealth.StatusError
		dbMsg = err.Error()
	}
	records = append(records, domainHealth.Record{
		Component: domainHealth.ComponentDatabase, Status: dbStatus, Message: dbMsg, CheckedAt: now,
	})

	serpStatus := domainHealth.StatusOk
	serpMsg := ""
	if !s.serpReady {
		serpStatus = domainHealth.StatusDegraded
		serpMsg = "no SERP API credential configured"
	}
	records = append(records, domainHealth.Record{
		Component: domainHealth.ComponentSerp, Status: serpStatus, Message: serpMsg, CheckedAt: now,
	})

	genStatus := domainHealth.StatusOk
	genMsg := ""
	if !s.generateReady {
		genStatus = domainHealth.StatusDegraded
		genMsg = "no generation provider credential configured"
	}
	records = append(records, domainHealth.Record{
		Component: domainHealth.ComponentGenerate, Status: genStatus, Message: genMsg, CheckedAt: now,
	})

	return records
}
