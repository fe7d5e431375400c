package repository

import (
	"fmt"
	"time"

	"github.com/ethanmoreau/bikejourney/internal/models"
	"gorm.io/gorm"
)

// AnalyticsRepository est une interface qui définit les méthodes d'accès aux données.
// Read-only: the day rows are written by the visit repository inside
// the recording transaction.
type AnalyticsRepository interface {
	GetAnalyticsSince(since time.Time) ([]models.Analytics, error)
	GetAnalyticsByDate(date time.Time) (*models.Analytics, error)
}

// GormAnalyticsRepository est l'implémentation de AnalyticsRepository utilisant GORM.
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository crée et retourne une nouvelle instance de GormAnalyticsRepository.
func NewAnalyticsRepository(db *gorm.DB) *GormAnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

// GetAnalyticsSince récupère les lignes journalières de la fenêtre,
// triées par date croissante. A day with no visits has no row.
func (r *GormAnalyticsRepository) GetAnalyticsSince(since time.Time) ([]models.Analytics, error) {
	var rows []models.Analytics
	err := r.db.Where("date >= ?", since).Order("date ASC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve analytics rows: %w", err)
	}
	return rows, nil
}

// GetAnalyticsByDate récupère la ligne d'un jour précis (normalisé à minuit).
func (r *GormAnalyticsRepository) GetAnalyticsByDate(date time.Time) (*models.Analytics, error) {
	var row models.Analytics
	if err := r.db.Where("date = ?", models.StartOfDay(date)).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
