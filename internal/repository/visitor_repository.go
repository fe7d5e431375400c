package repository

import (
	"fmt"
	"time"

	"github.com/ethanmoreau/bikejourney/internal/models"
	"gorm.io/gorm"
)

// VisitorRepository est une interface qui définit les méthodes d'accès aux données
type VisitorRepository interface {
	CreateVisitor(visitor *models.Visitor) error
	UpdateVisitor(visitor *models.Visitor) error
	GetVisitorByID(id string) (*models.Visitor, error)
	GetVisitorByIP(ipAddress string) (*models.Visitor, error)
	GetVisitorWithVisits(ipAddress string) (*models.Visitor, error)
	CountVisitorsCreatedSince(since time.Time) (int64, error)
}

// GormVisitorRepository est l'implémentation de VisitorRepository utilisant GORM.
type GormVisitorRepository struct {
	db *gorm.DB
}

// NewVisitorRepository crée et retourne une nouvelle instance de GormVisitorRepository.
func NewVisitorRepository(db *gorm.DB) *GormVisitorRepository {
	return &GormVisitorRepository{db: db}
}

// CreateVisitor insère un nouveau visiteur dans la base de données.
func (r *GormVisitorRepository) CreateVisitor(visitor *models.Visitor) error {
	if err := r.db.Create(visitor).Error; err != nil {
		return fmt.Errorf("failed to create visitor: %w", err)
	}
	return nil
}

// UpdateVisitor écrase les champs contextuels du visiteur (last-write-wins).
func (r *GormVisitorRepository) UpdateVisitor(visitor *models.Visitor) error {
	result := r.db.Model(&models.Visitor{}).
		Where("id = ?", visitor.ID).
		Select("UserAgent", "Country", "City").
		Updates(visitor)
	if result.Error != nil {
		return fmt.Errorf("failed to update visitor %s: %w", visitor.ID, result.Error)
	}
	return nil
}

// GetVisitorByID récupère un visiteur par son identifiant.
func (r *GormVisitorRepository) GetVisitorByID(id string) (*models.Visitor, error) {
	var visitor models.Visitor
	if err := r.db.Where("id = ?", id).First(&visitor).Error; err != nil {
		return nil, err
	}
	return &visitor, nil
}

// GetVisitorByIP récupère un visiteur par son adresse source.
func (r *GormVisitorRepository) GetVisitorByIP(ipAddress string) (*models.Visitor, error) {
	var visitor models.Visitor
	if err := r.db.Where("ip_address = ?", ipAddress).First(&visitor).Error; err != nil {
		return nil, err
	}
	return &visitor, nil
}

// GetVisitorWithVisits récupère un visiteur avec son historique de visites,
// les plus récentes d'abord, chaque visite portant son landmark s'il existe
// encore (référence souple : un landmark supprimé donne simplement nil).
func (r *GormVisitorRepository) GetVisitorWithVisits(ipAddress string) (*models.Visitor, error) {
	var visitor models.Visitor
	err := r.db.
		Preload("Visits", func(db *gorm.DB) *gorm.DB {
			return db.Order("visits.timestamp DESC")
		}).
		Preload("Visits.Landmark").
		Where("ip_address = ?", ipAddress).
		First(&visitor).Error
	if err != nil {
		return nil, err
	}
	return &visitor, nil
}

// CountVisitorsCreatedSince compte les visiteurs créés depuis l'instant donné.
// Note: this counts *new* visitors in the window, not active ones; the
// analytics endpoint has always labeled it uniqueVisitors.
func (r *GormVisitorRepository) CountVisitorsCreatedSince(since time.Time) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Visitor{}).Where("created_at >= ?", since).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count visitors: %w", err)
	}
	return count, nil
}
