package services

import (
	"time"

	"github.com/ethanmoreau/bikejourney/internal/models"
	"github.com/ethanmoreau/bikejourney/internal/repository"
)

// AnalyticsReport is the aggregate served for a trailing window.
//
// LandmarkStats is recomputed from Visit rows rather than read from the
// denormalized per-day landmark_stats field, and UniqueVisitors counts
// visitors *created* in the window (new visitors, not active ones) —
// both independent cross-check paths against the incrementally
// maintained day rows.
type AnalyticsReport struct {
	Analytics      []models.Analytics              `json:"analytics"`
	LandmarkStats  []repository.LandmarkVisitCount `json:"landmarkStats"`
	UniqueVisitors int64                           `json:"uniqueVisitors"`
	TotalVisits    int64                           `json:"totalVisits"`
}

// AnalyticsService is the read-only aggregation over visits and the
// per-day analytics rows. It never mutates anything.
type AnalyticsService struct {
	analyticsRepo     repository.AnalyticsRepository
	visitRepo         repository.VisitRepository
	visitorRepo       repository.VisitorRepository
	defaultWindowDays int
}

// NewAnalyticsService creates and returns a new instance of AnalyticsService.
func NewAnalyticsService(
	analyticsRepo repository.AnalyticsRepository,
	visitRepo repository.VisitRepository,
	visitorRepo repository.VisitorRepository,
	defaultWindowDays int,
) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo:     analyticsRepo,
		visitRepo:         visitRepo,
		visitorRepo:       visitorRepo,
		defaultWindowDays: defaultWindowDays,
	}
}

// Query aggregates the trailing window. windowDays = 1 means "today
// only": the window starts at the beginning of the current calendar day
// minus windowDays-1 days. Non-positive windowDays falls back to the
// configured default. A window with zero visits yields empty series and
// zero counts, not an error.
func (s *AnalyticsService) Query(windowDays int) (*AnalyticsReport, error) {
	if windowDays <= 0 {
		windowDays = s.defaultWindowDays
	}
	start := models.StartOfDay(time.Now()).AddDate(0, 0, -(windowDays - 1))

	dailySeries, err := s.analyticsRepo.GetAnalyticsSince(start)
	if err != nil {
		return nil, err
	}
	landmarkStats, err := s.visitRepo.CountVisitsByLandmarkSince(start)
	if err != nil {
		return nil, err
	}
	uniqueVisitors, err := s.visitorRepo.CountVisitorsCreatedSince(start)
	if err != nil {
		return nil, err
	}
	totalVisits, err := s.visitRepo.CountVisitsSince(start)
	if err != nil {
		return nil, err
	}

	return &AnalyticsReport{
		Analytics:      dailySeries,
		LandmarkStats:  landmarkStats,
		UniqueVisitors: uniqueVisitors,
		TotalVisits:    totalVisits,
	}, nil
}
