// Package dashboard computes the headline pipeline numbers
package dashboard

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/rolodex/internal/auth"
	"github.com/thenoetrevino/rolodex/internal/cache"
	"github.com/thenoetrevino/rolodex/internal/database"
	"github.com/thenoetrevino/rolodex/internal/models"
)

// Service defines the dashboard read model
type Service interface {
	Dashboard(ctx context.Context, s *auth.Session) (*models.Dashboard, error)
}

type service struct {
	repo  database.DataStore
	views cache.ViewCache
}

// NewService creates a new dashboard service
func NewService(repo database.DataStore, views cache.ViewCache) Service {
	return &service{repo: repo, views: views}
}

// Dashboard returns the caller's KPIs through the cached dashboard view
func (s *service) Dashboard(ctx context.Context, sess *auth.Session) (*models.Dashboard, error) {
	ownerID, err := auth.Require(sess)
	if err != nil {
		return nil, err
	}
	return cache.Load(ctx, s.views, ownerID, cache.ViewDashboard, func(ctx context.Context) (*models.Dashboard, error) {
		return s.compute(ctx, ownerID)
	})
}

func (s *service) compute(ctx context.Context, ownerID string) (*models.Dashboard, error) {
	contacts, err := s.repo.CountContacts(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}
	counts, values, err := s.repo.DealStats(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load deal stats: %w", err)
	}

	d := &models.Dashboard{
		TotalContacts: contacts,
		DealsByStage:  make(map[models.Stage]int, len(models.Stages)),
	}
	for _, stage := range models.Stages {
		n := counts[stage]
		d.DealsByStage[stage] = n
		d.TotalDeals += n
		if stage.IsOpen() {
			d.OpenDeals += n
			d.PipelineValue += values[stage]
		}
	}
	return d, nil
}
