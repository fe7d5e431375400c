package monitor

import (
	"errors"
	"testing"
	"time"

	"github.com/ethanmoreau/bikejourney/internal/models"
	"github.com/ethanmoreau/bikejourney/internal/repository"
	"github.com/stretchr/testify/assert"
)

// fakeGuestbookRepo drives the monitor without a database.
type fakeGuestbookRepo struct {
	pending int64
	err     error
}

func (f *fakeGuestbookRepo) CreateEntry(*models.GuestbookEntry) error { return nil }
func (f *fakeGuestbookRepo) ListApprovedEntries(string, int) ([]repository.GuestbookListItem, error) {
	return nil, nil
}
func (f *fakeGuestbookRepo) ApproveEntry(string) error { return nil }
func (f *fakeGuestbookRepo) CountPendingEntries() (int64, error) {
	return f.pending, f.err
}

func TestCheckPendingTracksQueueGrowth(t *testing.T) {
	repo := &fakeGuestbookRepo{pending: 2}
	m := NewModerationMonitor(repo, time.Minute)

	// First check seeds the baseline
	m.CheckPending()
	assert.EqualValues(t, 2, m.lastPending)
	assert.True(t, m.seeded)

	// Growth updates the baseline
	repo.pending = 5
	m.CheckPending()
	assert.EqualValues(t, 5, m.lastPending)

	// Shrinking (moderation caught up) is absorbed silently
	repo.pending = 0
	m.CheckPending()
	assert.EqualValues(t, 0, m.lastPending)
}

func TestCheckPendingKeepsStateOnError(t *testing.T) {
	repo := &fakeGuestbookRepo{pending: 3}
	m := NewModerationMonitor(repo, time.Minute)
	m.CheckPending()

	// A failed count must not disturb the baseline
	repo.err = errors.New("store down")
	repo.pending = 99
	m.CheckPending()
	assert.EqualValues(t, 3, m.lastPending)
}
