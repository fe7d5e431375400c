package services

import (
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/ethanmoreau/bikejourney/internal/errors"
	"github.com/ethanmoreau/bikejourney/internal/models"
	"github.com/ethanmoreau/bikejourney/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GuestbookService creates and lists moderated messages left against
// landmarks. New entries always start unapproved and stay out of public
// listings until moderation flips them.
type GuestbookService struct {
	guestbookRepo repository.GuestbookRepository
	landmarkRepo  repository.LandmarkRepository

	maxEntries       int // listing cap
	maxNameLength    int
	maxMessageLength int
}

// NewGuestbookService creates and returns a new instance of GuestbookService.
// The bounds mirror what the site's guestbook modal enforces client-side;
// they are enforced here again because the caller cannot be trusted.
func NewGuestbookService(
	guestbookRepo repository.GuestbookRepository,
	landmarkRepo repository.LandmarkRepository,
	maxEntries, maxNameLength, maxMessageLength int,
) *GuestbookService {
	return &GuestbookService{
		guestbookRepo:    guestbookRepo,
		landmarkRepo:     landmarkRepo,
		maxEntries:       maxEntries,
		maxNameLength:    maxNameLength,
		maxMessageLength: maxMessageLength,
	}
}

// Add creates a new unapproved entry for a landmark.
// Name and message are trimmed before validation; empty or oversized
// values are rejected, as is a landmark id that does not resolve.
func (s *GuestbookService) Add(landmarkID, name, message string) (*models.GuestbookEntry, error) {
	name = strings.TrimSpace(name)
	message = strings.TrimSpace(message)

	if name == "" {
		return nil, apperrors.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(name) > s.maxNameLength {
		return nil, apperrors.ValidationError{Field: "name", Reason: fmt.Sprintf("must not exceed %d characters", s.maxNameLength)}
	}
	if message == "" {
		return nil, apperrors.ValidationError{Field: "message", Reason: "must not be empty"}
	}
	if len(message) > s.maxMessageLength {
		return nil, apperrors.ValidationError{Field: "message", Reason: fmt.Sprintf("must not exceed %d characters", s.maxMessageLength)}
	}

	if _, err := s.landmarkRepo.GetLandmarkByID(landmarkID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLandmarkNotFound
		}
		return nil, fmt.Errorf("failed to verify landmark: %w", err)
	}

	entry := &models.GuestbookEntry{
		ID:         uuid.NewString(),
		LandmarkID: landmarkID,
		Name:       name,
		Message:    message,
		IsApproved: false, // every entry awaits moderation
	}
	if err := s.guestbookRepo.CreateEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// List returns approved entries, newest first, capped. landmarkID
// narrows the listing to one landmark; empty means all landmarks.
// Each item carries its landmark title for display, empty when the
// landmark has since been deleted.
func (s *GuestbookService) List(landmarkID string) ([]repository.GuestbookListItem, error) {
	return s.guestbookRepo.ListApprovedEntries(landmarkID, s.maxEntries)
}
