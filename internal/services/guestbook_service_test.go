package services

import (
	"strings"
	"testing"
	"time"

	apperrors "github.com/ethanmoreau/bikejourney/internal/errors"
	"github.com/ethanmoreau/bikejourney/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddEntryRequiresExistingLandmark(t *testing.T) {
	stack := newTestStack(t)

	_, err := stack.guestbook.Add("nowhere", "Sam", "Hello!")
	require.ErrorIs(t, err, apperrors.ErrLandmarkNotFound)
}

func TestAddEntryTrimsAndValidates(t *testing.T) {
	stack := newTestStack(t)
	stack.createLandmark(t, "library", "Public Library")

	entry, err := stack.guestbook.Add("library", "  Sam  ", "  Nice stop!  ")
	require.NoError(t, err)
	assert.Equal(t, "Sam", entry.Name)
	assert.Equal(t, "Nice stop!", entry.Message)
	assert.False(t, entry.IsApproved, "new entries always start unapproved")

	// Whitespace-only fields are empty after trimming
	_, err = stack.guestbook.Add("library", "   ", "message")
	assert.True(t, apperrors.IsValidation(err))

	_, err = stack.guestbook.Add("library", "Sam", "   ")
	assert.True(t, apperrors.IsValidation(err))

	// Oversized fields are rejected by the service, not the transport
	_, err = stack.guestbook.Add("library", strings.Repeat("x", 51), "message")
	assert.True(t, apperrors.IsValidation(err))

	_, err = stack.guestbook.Add("library", "Sam", strings.Repeat("x", 501))
	assert.True(t, apperrors.IsValidation(err))
}

func TestListShowsOnlyApprovedNewestFirst(t *testing.T) {
	stack := newTestStack(t)
	stack.createLandmark(t, "park", "Community Park")

	first, err := stack.guestbook.Add("park", "Ana", "First message")
	require.NoError(t, err)
	second, err := stack.guestbook.Add("park", "Ben", "Second message")
	require.NoError(t, err)
	third, err := stack.guestbook.Add("park", "Caro", "Third message")
	require.NoError(t, err)

	// Spread the creation times so the ordering check is deterministic
	base := time.Now().Add(-time.Hour)
	for i, id := range []string{first.ID, second.ID, third.ID} {
		require.NoError(t, stack.db.Model(&models.GuestbookEntry{}).
			Where("id = ?", id).
			Update("created_at", base.Add(time.Duration(i)*time.Minute)).Error)
	}

	// Nothing listed until moderation approves
	entries, err := stack.guestbook.List("park")
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, stack.guestbookRepo.ApproveEntry(first.ID))
	require.NoError(t, stack.guestbookRepo.ApproveEntry(second.ID))

	entries, err = stack.guestbook.List("park")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Ben", entries[0].Name, "newest approved entry comes first")
	assert.Equal(t, "Ana", entries[1].Name)
	assert.Equal(t, "Community Park", entries[0].LandmarkTitle)

	// Listing is idempotent: no intervening writes, identical result
	again, err := stack.guestbook.List("park")
	require.NoError(t, err)
	assert.Equal(t, entries, again)
}

func TestListFiltersByLandmark(t *testing.T) {
	stack := newTestStack(t)
	stack.createLandmark(t, "park", "Community Park")
	stack.createLandmark(t, "library", "Public Library")

	parkEntry, err := stack.guestbook.Add("park", "Ana", "At the park")
	require.NoError(t, err)
	libEntry, err := stack.guestbook.Add("library", "Ben", "At the library")
	require.NoError(t, err)
	require.NoError(t, stack.guestbookRepo.ApproveEntry(parkEntry.ID))
	require.NoError(t, stack.guestbookRepo.ApproveEntry(libEntry.ID))

	entries, err := stack.guestbook.List("library")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ben", entries[0].Name)

	// Empty landmark id lists across all landmarks
	entries, err = stack.guestbook.List("")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestListSurvivesLandmarkDeletion(t *testing.T) {
	stack := newTestStack(t)
	stack.createLandmark(t, "park", "Community Park")

	entry, err := stack.guestbook.Add("park", "Ana", "At the park")
	require.NoError(t, err)
	require.NoError(t, stack.guestbookRepo.ApproveEntry(entry.ID))

	// Deleting the landmark leaves the entry behind with a dangling id
	require.NoError(t, stack.landmarks.Delete("park"))

	entries, err := stack.guestbook.List("park")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "park", entries[0].LandmarkID)
	assert.Equal(t, "", entries[0].LandmarkTitle, "missing landmark degrades to an empty title")
}
