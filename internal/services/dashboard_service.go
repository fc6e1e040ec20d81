package services

import (
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/dashboard"
	"eventstaff_backend/internal/repositories"
	"eventstaff_backend/internal/services/dto"
)

type DashboardService interface {
	Client(db *gorm.DB, session *auth.Session) (*dto.ClientDashboardResponse, error)
	Staff(db *gorm.DB, session *auth.Session) (*dto.StaffDashboardResponse, error)
}

type DashboardServiceImpl struct {
	repos  *repositories.RepositoryContainer
	market Marketplace
	now    func() time.Time
}

func NewDashboardService(repos *repositories.RepositoryContainer, market Marketplace, now func() time.Time) DashboardService {
	return &DashboardServiceImpl{repos: repos, market: market, now: now}
}

// Client loads the snapshot concurrently and aggregates it. Nothing is
// cached; every call reads fresh rows.
func (s *DashboardServiceImpl) Client(db *gorm.DB, session *auth.Session) (*dto.ClientDashboardResponse, error) {
	if err := requireClient(session); err != nil {
		return nil, err
	}

	var snap dashboard.ClientSnapshot
	g, gctx := errgroup.WithContext(contextOf(db))
	gdb := db.WithContext(gctx)

	g.Go(func() error {
		events, err := s.repos.Event.ListByClient(gdb, session.UserID)
		snap.Events = events
		return err
	})
	g.Go(func() error {
		rows, err := s.repos.Attendance.ListByClient(gdb, session.UserID)
		snap.Attendance = rows
		return err
	})
	g.Go(func() error {
		sub, err := s.repos.Subscription.FindByClientID(gdb, session.UserID)
		snap.Subscription = sub
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, repoError(err)
	}

	now := s.now()
	sub := dto.NewSubscriptionResponse(snap.Subscription, now, s.market.FreeMonthlyPosts)
	return &dto.ClientDashboardResponse{
		Stats:        dashboard.Client(snap, now, s.market.FreeMonthlyPosts),
		Subscription: &sub,
	}, nil
}

func (s *DashboardServiceImpl) Staff(db *gorm.DB, session *auth.Session) (*dto.StaffDashboardResponse, error) {
	if err := requireStaff(session); err != nil {
		return nil, err
	}

	var snap dashboard.StaffSnapshot
	g, gctx := errgroup.WithContext(contextOf(db))
	gdb := db.WithContext(gctx)

	g.Go(func() error {
		apps, err := s.repos.Application.ListByStaff(gdb, session.UserID, 0)
		snap.Applications = apps
		return err
	})
	g.Go(func() error {
		rows, err := s.repos.Attendance.ListByStaff(gdb, session.UserID)
		snap.Attendance = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, repoError(err)
	}

	recent := dashboard.RecentApplications(snap.Applications, dashboard.RecentApplicationsLimit)
	return &dto.StaffDashboardResponse{
		Stats:              dashboard.Staff(snap),
		RecentApplications: dto.NewApplicationResponses(recent),
	}, nil
}

