package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	apperrors "github.com/ethanmoreau/bikejourney/internal/errors"
	"github.com/ethanmoreau/bikejourney/internal/models"
	"github.com/ethanmoreau/bikejourney/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// slugPattern constrains caller-supplied landmark ids to the slug shape
// the scene uses ("movie-theater", "soccer-pitch", ...).
var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// LandmarkInput carries the full field set of a landmark for create and
// update calls. Updates are full-replace: every field is written, zero
// values included.
type LandmarkInput struct {
	Title            string
	Description      string
	Details          string
	SplineObjectName string
	Position         *models.Position
	IsActive         bool
}

// LandmarkService provides the admin-facing registry of landmarks.
type LandmarkService struct {
	landmarkRepo repository.LandmarkRepository
}

// NewLandmarkService creates and returns a new instance of LandmarkService.
func NewLandmarkService(landmarkRepo repository.LandmarkRepository) *LandmarkService {
	return &LandmarkService{
		landmarkRepo: landmarkRepo,
	}
}

// Create registers a new landmark. id may be a caller-supplied slug;
// when empty a UUID is generated. New landmarks default to active.
// Position is stored as given, without range validation.
func (s *LandmarkService) Create(id string, input LandmarkInput) (*models.Landmark, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	} else if !slugPattern.MatchString(id) {
		return nil, apperrors.ErrInvalidLandmarkID
	}

	if err := validateLandmarkInput(input); err != nil {
		return nil, err
	}

	landmark := &models.Landmark{
		ID:               id,
		Title:            strings.TrimSpace(input.Title),
		Description:      input.Description,
		Details:          input.Details,
		SplineObjectName: input.SplineObjectName,
		Position:         input.Position,
		IsActive:         true,
	}
	if err := s.landmarkRepo.CreateLandmark(landmark); err != nil {
		return nil, err
	}
	return landmark, nil
}

// Update replaces all modifiable fields of an existing landmark.
func (s *LandmarkService) Update(id string, input LandmarkInput) (*models.Landmark, error) {
	if err := validateLandmarkInput(input); err != nil {
		return nil, err
	}

	landmark := &models.Landmark{
		ID:               id,
		Title:            strings.TrimSpace(input.Title),
		Description:      input.Description,
		Details:          input.Details,
		SplineObjectName: input.SplineObjectName,
		Position:         input.Position,
		IsActive:         input.IsActive,
	}
	if err := s.landmarkRepo.UpdateLandmark(landmark); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLandmarkNotFound
		}
		return nil, err
	}
	// Re-read so the caller gets the stored timestamps
	return s.landmarkRepo.GetLandmarkByID(id)
}

// Delete hard-deletes the landmark. Existing visits and guestbook
// entries referencing it are left behind with dangling ids; everything
// that displays a landmark tolerates the missing lookup.
func (s *LandmarkService) Delete(id string) error {
	if err := s.landmarkRepo.DeleteLandmark(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrLandmarkNotFound
		}
		return err
	}
	return nil
}

// List returns landmarks ordered by creation time ascending.
// activeOnly is the mode the public-facing scene uses; the admin view
// lists everything.
func (s *LandmarkService) List(activeOnly bool) ([]models.Landmark, error) {
	return s.landmarkRepo.GetAllLandmarks(activeOnly)
}

// Get returns a single landmark by id.
func (s *LandmarkService) Get(id string) (*models.Landmark, error) {
	landmark, err := s.landmarkRepo.GetLandmarkByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLandmarkNotFound
		}
		return nil, fmt.Errorf("failed to fetch landmark: %w", err)
	}
	return landmark, nil
}

func validateLandmarkInput(input LandmarkInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return apperrors.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(input.SplineObjectName) == "" {
		return apperrors.ValidationError{Field: "splineObjectName", Reason: "must not be empty"}
	}
	return nil
}
