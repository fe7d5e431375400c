package services

import (
	"errors"
	"fmt"
	"time"

	apperrors "github.com/ethanmoreau/bikejourney/internal/errors"
	"github.com/ethanmoreau/bikejourney/internal/models"
	"github.com/ethanmoreau/bikejourney/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisitService records visits and keeps the daily analytics aggregate
// in step. A visit may stop at a landmark or be a generic page visit.
type VisitService struct {
	visitRepo    repository.VisitRepository
	visitorRepo  repository.VisitorRepository
	landmarkRepo repository.LandmarkRepository
}

// NewVisitService creates and returns a new instance of VisitService.
func NewVisitService(
	visitRepo repository.VisitRepository,
	visitorRepo repository.VisitorRepository,
	landmarkRepo repository.LandmarkRepository,
) *VisitService {
	return &VisitService{
		visitRepo:    visitRepo,
		visitorRepo:  visitorRepo,
		landmarkRepo: landmarkRepo,
	}
}

// Record writes a visit for the given visitor and updates today's
// analytics row.
//
// Precondition: visitorID must belong to a visitor whose stored address
// equals ipAddress. This rejects replaying another visitor's id from a
// different address; only address equality is checked, there is no
// secret involved.
//
// Parameters:
//   - ipAddress: the caller's source address
//   - visitorID: the visitor the caller claims to be
//   - landmarkID: nil for a generic page visit; otherwise must reference
//     an existing landmark at write time
//   - duration: optional client-computed seconds, accepted as-is (may be
//     negative or absurd)
func (s *VisitService) Record(ipAddress, visitorID string, landmarkID *string, duration *int) (*models.Visit, error) {
	visitor, err := s.visitorRepo.GetVisitorByID(visitorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidVisitor
		}
		return nil, fmt.Errorf("failed to verify visitor: %w", err)
	}
	if visitor.IPAddress != ipAddress {
		return nil, apperrors.ErrInvalidVisitor
	}

	// Referential check at write time. Afterwards the reference is
	// soft: deleting the landmark later leaves this visit behind.
	if landmarkID != nil && *landmarkID != "" {
		if _, err := s.landmarkRepo.GetLandmarkByID(*landmarkID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrLandmarkNotFound
			}
			return nil, fmt.Errorf("failed to verify landmark: %w", err)
		}
	} else {
		landmarkID = nil
	}

	visit := &models.Visit{
		ID:         uuid.NewString(),
		VisitorID:  visitorID,
		LandmarkID: landmarkID,
		Duration:   duration,
		Timestamp:  time.Now(),
	}
	if err := s.visitRepo.RecordVisit(visit); err != nil {
		return nil, err
	}
	return visit, nil
}
