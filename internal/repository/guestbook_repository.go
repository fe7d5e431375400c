package repository

import (
	"fmt"

	"github.com/ethanmoreau/bikejourney/internal/models"
	"gorm.io/gorm"
)

// GuestbookListItem is an approved entry together with the title of its
// landmark for display. The title comes from a LEFT JOIN: an entry whose
// landmark has since been deleted still lists, with an empty title.
type GuestbookListItem struct {
	models.GuestbookEntry
	LandmarkTitle string `json:"landmarkTitle"`
}

// GuestbookRepository est une interface qui définit les méthodes d'accès aux données
type GuestbookRepository interface {
	CreateEntry(entry *models.GuestbookEntry) error
	ListApprovedEntries(landmarkID string, limit int) ([]GuestbookListItem, error)
	ApproveEntry(id string) error
	CountPendingEntries() (int64, error)
}

// GormGuestbookRepository est l'implémentation de GuestbookRepository utilisant GORM.
type GormGuestbookRepository struct {
	db *gorm.DB
}

// NewGuestbookRepository crée et retourne une nouvelle instance de GormGuestbookRepository.
func NewGuestbookRepository(db *gorm.DB) *GormGuestbookRepository {
	return &GormGuestbookRepository{db: db}
}

// CreateEntry insère une nouvelle entrée de livre d'or.
func (r *GormGuestbookRepository) CreateEntry(entry *models.GuestbookEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create guestbook entry: %w", err)
	}
	return nil
}

// ListApprovedEntries liste les entrées approuvées, les plus récentes
// d'abord, limitées à limit. landmarkID vide = tous les landmarks.
func (r *GormGuestbookRepository) ListApprovedEntries(landmarkID string, limit int) ([]GuestbookListItem, error) {
	var items []GuestbookListItem
	query := r.db.Model(&models.GuestbookEntry{}).
		Select("guestbook_entries.*, landmarks.title AS landmark_title").
		Joins("LEFT JOIN landmarks ON landmarks.id = guestbook_entries.landmark_id").
		Where("guestbook_entries.is_approved = ?", true)
	if landmarkID != "" {
		query = query.Where("guestbook_entries.landmark_id = ?", landmarkID)
	}
	err := query.
		Order("guestbook_entries.created_at DESC").
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list guestbook entries: %w", err)
	}
	return items, nil
}

// ApproveEntry marque une entrée comme approuvée. Used by the
// moderation tooling, not exposed over the public API.
func (r *GormGuestbookRepository) ApproveEntry(id string) error {
	result := r.db.Model(&models.GuestbookEntry{}).
		Where("id = ?", id).
		Update("is_approved", true)
	if result.Error != nil {
		return fmt.Errorf("failed to approve guestbook entry %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountPendingEntries compte les entrées en attente de modération.
func (r *GormGuestbookRepository) CountPendingEntries() (int64, error) {
	var count int64
	if err := r.db.Model(&models.GuestbookEntry{}).Where("is_approved = ?", false).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count pending entries: %w", err)
	}
	return count, nil
}
