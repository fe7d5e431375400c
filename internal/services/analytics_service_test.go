package services

import (
	"testing"
	"time"

	"github.com/ethanmoreau/bikejourney/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryEmptyWindowIsNotAnError(t *testing.T) {
	stack := newTestStack(t)

	report, err := stack.analytics.Query(1)
	require.NoError(t, err)
	assert.Empty(t, report.Analytics)
	assert.Empty(t, report.LandmarkStats)
	assert.Zero(t, report.UniqueVisitors)
	assert.Zero(t, report.TotalVisits)
}

func TestQueryAggregatesTrailingWindow(t *testing.T) {
	stack := newTestStack(t)
	stack.createLandmark(t, "park", "Community Park")
	stack.createLandmark(t, "library", "Public Library")

	visitor, err := stack.visitors.Resolve("1.2.3.4", "agent", "", "")
	require.NoError(t, err)

	park, library := "park", "library"
	_, err = stack.visits.Record("1.2.3.4", visitor.ID, &park, nil)
	require.NoError(t, err)
	_, err = stack.visits.Record("1.2.3.4", visitor.ID, &park, nil)
	require.NoError(t, err)
	_, err = stack.visits.Record("1.2.3.4", visitor.ID, &library, nil)
	require.NoError(t, err)

	report, err := stack.analytics.Query(1)
	require.NoError(t, err)

	require.Len(t, report.Analytics, 1)
	assert.Equal(t, 3, report.Analytics[0].TotalVisits)
	assert.EqualValues(t, 3, report.TotalVisits)
	assert.EqualValues(t, 1, report.UniqueVisitors)

	// Recomputed from visit rows, ordered by count descending
	require.Len(t, report.LandmarkStats, 2)
	assert.Equal(t, "park", report.LandmarkStats[0].LandmarkID)
	assert.EqualValues(t, 2, report.LandmarkStats[0].Count)
	assert.Equal(t, "library", report.LandmarkStats[1].LandmarkID)
	assert.EqualValues(t, 1, report.LandmarkStats[1].Count)
}

func TestQueryWindowExcludesOlderDays(t *testing.T) {
	stack := newTestStack(t)

	// Plant an old day row and an old visit directly: the recorder
	// only ever writes "today"
	twoDaysAgo := models.StartOfDay(time.Now()).AddDate(0, 0, -2)
	require.NoError(t, stack.db.Create(&models.Analytics{
		ID:          uuid.NewString(),
		Date:        twoDaysAgo,
		TotalVisits: 7,
	}).Error)
	require.NoError(t, stack.db.Create(&models.Visit{
		ID:        uuid.NewString(),
		VisitorID: uuid.NewString(),
		Timestamp: twoDaysAgo.Add(10 * time.Hour),
	}).Error)

	// windowDays=1 means today only
	today, err := stack.analytics.Query(1)
	require.NoError(t, err)
	assert.Empty(t, today.Analytics)
	assert.Zero(t, today.TotalVisits)

	// A three-day window reaches back far enough
	wider, err := stack.analytics.Query(3)
	require.NoError(t, err)
	require.Len(t, wider.Analytics, 1)
	assert.Equal(t, 7, wider.Analytics[0].TotalVisits)
	assert.EqualValues(t, 1, wider.TotalVisits)
}

func TestQueryDefaultsWindow(t *testing.T) {
	stack := newTestStack(t)

	// Non-positive windowDays falls back to the configured default (7)
	sixDaysAgo := models.StartOfDay(time.Now()).AddDate(0, 0, -6)
	require.NoError(t, stack.db.Create(&models.Analytics{
		ID:          uuid.NewString(),
		Date:        sixDaysAgo,
		TotalVisits: 2,
	}).Error)

	report, err := stack.analytics.Query(0)
	require.NoError(t, err)
	require.Len(t, report.Analytics, 1)
	assert.Equal(t, 2, report.Analytics[0].TotalVisits)
}
