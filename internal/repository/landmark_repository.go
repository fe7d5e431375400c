package repository

import (
	"fmt"

	"github.com/ethanmoreau/bikejourney/internal/models"
	"gorm.io/gorm"
)

// LandmarkRepository est une interface qui définit les méthodes d'accès aux données
type LandmarkRepository interface {
	CreateLandmark(landmark *models.Landmark) error
	GetLandmarkByID(id string) (*models.Landmark, error)
	GetAllLandmarks(activeOnly bool) ([]models.Landmark, error)
	UpdateLandmark(landmark *models.Landmark) error
	DeleteLandmark(id string) error
}

// GormLandmarkRepository est l'implémentation de LandmarkRepository utilisant GORM.
type GormLandmarkRepository struct {
	db *gorm.DB
}

// NewLandmarkRepository crée et retourne une nouvelle instance de GormLandmarkRepository.
func NewLandmarkRepository(db *gorm.DB) *GormLandmarkRepository {
	return &GormLandmarkRepository{db: db}
}

// CreateLandmark insère un nouveau landmark dans la base de données.
func (r *GormLandmarkRepository) CreateLandmark(landmark *models.Landmark) error {
	if err := r.db.Create(landmark).Error; err != nil {
		return fmt.Errorf("failed to create landmark: %w", err)
	}
	return nil
}

// GetLandmarkByID récupère un landmark par son identifiant.
func (r *GormLandmarkRepository) GetLandmarkByID(id string) (*models.Landmark, error) {
	var landmark models.Landmark
	if err := r.db.Where("id = ?", id).First(&landmark).Error; err != nil {
		return nil, err
	}
	return &landmark, nil
}

// GetAllLandmarks récupère les landmarks, triés par date de création croissante.
// activeOnly restreint la liste aux landmarks visibles dans la scène publique.
func (r *GormLandmarkRepository) GetAllLandmarks(activeOnly bool) ([]models.Landmark, error) {
	var landmarks []models.Landmark
	query := r.db.Order("created_at ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Find(&landmarks).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve landmarks: %w", err)
	}
	return landmarks, nil
}

// UpdateLandmark remplace tous les champs modifiables du landmark.
// Full-replace semantics: zero values (like IsActive=false) persist too.
func (r *GormLandmarkRepository) UpdateLandmark(landmark *models.Landmark) error {
	result := r.db.Model(&models.Landmark{}).
		Where("id = ?", landmark.ID).
		Select("Title", "Description", "Details", "SplineObjectName", "Position", "IsActive").
		Updates(landmark)
	if result.Error != nil {
		return fmt.Errorf("failed to update landmark %s: %w", landmark.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteLandmark supprime définitivement le landmark.
// Visits and guestbook entries referencing the id are left in place.
func (r *GormLandmarkRepository) DeleteLandmark(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Landmark{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete landmark %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
