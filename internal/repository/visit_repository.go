package repository

import (
	"fmt"
	"time"

	"github.com/ethanmoreau/bikejourney/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LandmarkVisitCount is one row of the per-landmark visit aggregation,
// recomputed from Visit rows rather than read from the denormalized
// landmark_stats field. Keeping this path independent gives a
// cross-check against the incrementally maintained day rows.
type LandmarkVisitCount struct {
	LandmarkID string `json:"landmarkId"`
	Count      int64  `json:"count"`
}

// VisitRepository est une interface qui définit les méthodes d'accès aux données
type VisitRepository interface {
	RecordVisit(visit *models.Visit) error
	CountVisitsSince(since time.Time) (int64, error)
	CountVisitsByLandmarkSince(since time.Time) ([]LandmarkVisitCount, error)
}

// GormVisitRepository est l'implémentation de VisitRepository utilisant GORM.
// It owns the whole visit write path: the Visit insert and the daily
// Analytics upsert happen inside one transaction so a crash between the
// two cannot leave an under-counted day row.
type GormVisitRepository struct {
	db *gorm.DB
}

// NewVisitRepository crée et retourne une nouvelle instance de GormVisitRepository.
func NewVisitRepository(db *gorm.DB) *GormVisitRepository {
	return &GormVisitRepository{db: db}
}

// RecordVisit insère la visite puis incrémente l'agrégat du jour.
//
// The increments are pushed into the upsert statement itself
// (total_visits + 1, json_set on landmark_stats), not computed
// read-modify-write in Go, so two concurrent recorders hitting the
// same day row cannot lose an increment: the unique index on date
// plus the SQL-side arithmetic make the operation atomic.
func (r *GormVisitRepository) RecordVisit(visit *models.Visit) error {
	day := models.StartOfDay(visit.Timestamp)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		// First visit of the day for this visitor? Checked before the
		// insert so the visit being recorded does not count itself.
		var priorToday int64
		if err := tx.Model(&models.Visit{}).
			Where("visitor_id = ? AND timestamp >= ?", visit.VisitorID, day).
			Count(&priorToday).Error; err != nil {
			return err
		}

		if err := tx.Create(visit).Error; err != nil {
			return err
		}

		assignments := map[string]interface{}{
			"total_visits": gorm.Expr("total_visits + 1"),
			"updated_at":   time.Now(),
		}
		if priorToday == 0 {
			assignments["unique_visitors"] = gorm.Expr("unique_visitors + 1")
		}

		stats := datatypes.JSONMap{}
		if visit.LandmarkID != nil {
			// SQLite JSON path for the landmark key; the id is bound as
			// a parameter, and landmark ids are validated slugs anyway
			path := fmt.Sprintf(`$."%s"`, *visit.LandmarkID)
			assignments["landmark_stats"] = gorm.Expr(
				`json_set(coalesce(landmark_stats, '{}'), ?, coalesce(json_extract(landmark_stats, ?), 0) + 1)`,
				path, path,
			)
			stats[*visit.LandmarkID] = 1
		}

		row := models.Analytics{
			ID:             uuid.NewString(),
			Date:           day,
			TotalVisits:    1,
			UniqueVisitors: boolToInt(priorToday == 0),
			LandmarkStats:  stats,
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoUpdates: clause.Assignments(assignments),
		}).Create(&row).Error
	})
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

// CountVisitsSince compte les visites enregistrées depuis l'instant donné.
func (r *GormVisitRepository) CountVisitsSince(since time.Time) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Visit{}).Where("timestamp >= ?", since).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count visits: %w", err)
	}
	return count, nil
}

// CountVisitsByLandmarkSince agrège les visites par landmark sur la fenêtre.
// Only visits that stopped at a landmark are counted.
func (r *GormVisitRepository) CountVisitsByLandmarkSince(since time.Time) ([]LandmarkVisitCount, error) {
	var counts []LandmarkVisitCount
	err := r.db.Model(&models.Visit{}).
		Select("landmark_id, COUNT(*) AS count").
		Where("timestamp >= ? AND landmark_id IS NOT NULL", since).
		Group("landmark_id").
		Order("count DESC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate visits by landmark: %w", err)
	}
	return counts, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
