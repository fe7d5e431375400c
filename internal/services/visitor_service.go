// Package services contains the business logic layer for the bike
// journey backend. Services sit between the HTTP handlers and the data
// repositories.
package services

import (
	"errors"
	"fmt"

	"github.com/ethanmoreau/bikejourney/internal/models"
	"github.com/ethanmoreau/bikejourney/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VisitorService resolves request source addresses to stable visitor
// identities. One visitor row exists per distinct address; context
// fields are overwritten on every contact (last write wins, no history).
type VisitorService struct {
	visitorRepo repository.VisitorRepository
}

// NewVisitorService creates and returns a new instance of VisitorService.
func NewVisitorService(visitorRepo repository.VisitorRepository) *VisitorService {
	return &VisitorService{
		visitorRepo: visitorRepo,
	}
}

// Resolve maps a source address to its visitor record, creating it on
// first contact and overwriting userAgent/country/city otherwise.
// Parameters:
//   - ipAddress: the request's source address, derived from the transport
//   - userAgent, country, city: client-supplied context, accepted as-is
//
// Returns the visitor record, freshly created or updated.
func (s *VisitorService) Resolve(ipAddress, userAgent, country, city string) (*models.Visitor, error) {
	visitor, err := s.visitorRepo.GetVisitorByIP(ipAddress)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// First contact from this address
			visitor = &models.Visitor{
				ID:        uuid.NewString(),
				IPAddress: ipAddress,
				UserAgent: userAgent,
				Country:   country,
				City:      city,
			}
			if err := s.visitorRepo.CreateVisitor(visitor); err != nil {
				return nil, fmt.Errorf("failed to resolve visitor: %w", err)
			}
			return visitor, nil
		}
		return nil, fmt.Errorf("failed to resolve visitor: %w", err)
	}

	visitor.UserAgent = userAgent
	visitor.Country = country
	visitor.City = city
	if err := s.visitorRepo.UpdateVisitor(visitor); err != nil {
		return nil, fmt.Errorf("failed to resolve visitor: %w", err)
	}
	return visitor, nil
}

// GetByIP returns the visitor for an address with its visit history,
// newest first, each visit carrying its landmark when it still exists.
// Returns (nil, nil) when the address has never been seen: an unknown
// visitor is a normal answer, not an error.
func (s *VisitorService) GetByIP(ipAddress string) (*models.Visitor, error) {
	visitor, err := s.visitorRepo.GetVisitorWithVisits(ipAddress)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch visitor: %w", err)
	}
	return visitor, nil
}
