package services

import (
	"testing"
	"time"

	apperrors "github.com/ethanmoreau/bikejourney/internal/errors"
	"github.com/ethanmoreau/bikejourney/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordVisitRejectsForeignVisitorID(t *testing.T) {
	stack := newTestStack(t)

	visitor, err := stack.visitors.Resolve("1.2.3.4", "agent", "", "")
	require.NoError(t, err)

	// Replaying the id from another address fails and writes nothing
	_, err = stack.visits.Record("5.6.7.8", visitor.ID, nil, nil)
	require.ErrorIs(t, err, apperrors.ErrInvalidVisitor)

	var visitCount int64
	require.NoError(t, stack.db.Model(&models.Visit{}).Count(&visitCount).Error)
	assert.Zero(t, visitCount)

	var dayCount int64
	require.NoError(t, stack.db.Model(&models.Analytics{}).Count(&dayCount).Error)
	assert.Zero(t, dayCount)
}

func TestRecordVisitRejectsUnknownVisitorID(t *testing.T) {
	stack := newTestStack(t)

	_, err := stack.visits.Record("1.2.3.4", "no-such-visitor", nil, nil)
	require.ErrorIs(t, err, apperrors.ErrInvalidVisitor)
}

func TestRecordVisitRejectsUnknownLandmark(t *testing.T) {
	stack := newTestStack(t)

	visitor, err := stack.visitors.Resolve("1.2.3.4", "agent", "", "")
	require.NoError(t, err)

	landmarkID := "nowhere"
	_, err = stack.visits.Record("1.2.3.4", visitor.ID, &landmarkID, nil)
	require.ErrorIs(t, err, apperrors.ErrLandmarkNotFound)
}

func TestRecordVisitUpdatesDailyAggregate(t *testing.T) {
	stack := newTestStack(t)
	stack.createLandmark(t, "park", "Community Park")

	visitor, err := stack.visitors.Resolve("1.2.3.4", "agent", "", "")
	require.NoError(t, err)

	landmarkID := "park"
	duration := 42
	visit, err := stack.visits.Record("1.2.3.4", visitor.ID, &landmarkID, &duration)
	require.NoError(t, err)
	require.NotNil(t, visit.Duration)
	assert.Equal(t, 42, *visit.Duration)

	row, err := stack.analyticsRepo.GetAnalyticsByDate(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, row.TotalVisits)
	assert.Equal(t, 1, row.UniqueVisitors)
	assert.EqualValues(t, 1, row.LandmarkStats["park"])

	// Second stop at the same landmark, same visitor, same day
	_, err = stack.visits.Record("1.2.3.4", visitor.ID, &landmarkID, nil)
	require.NoError(t, err)

	row, err = stack.analyticsRepo.GetAnalyticsByDate(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, row.TotalVisits)
	assert.Equal(t, 1, row.UniqueVisitors, "same visitor must not count twice in a day")
	assert.EqualValues(t, 2, row.LandmarkStats["park"])
}

func TestRecordVisitCountsDistinctDailyVisitors(t *testing.T) {
	stack := newTestStack(t)

	first, err := stack.visitors.Resolve("1.2.3.4", "agent", "", "")
	require.NoError(t, err)
	second, err := stack.visitors.Resolve("5.6.7.8", "agent", "", "")
	require.NoError(t, err)

	_, err = stack.visits.Record("1.2.3.4", first.ID, nil, nil)
	require.NoError(t, err)
	_, err = stack.visits.Record("5.6.7.8", second.ID, nil, nil)
	require.NoError(t, err)

	row, err := stack.analyticsRepo.GetAnalyticsByDate(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, row.TotalVisits)
	assert.Equal(t, 2, row.UniqueVisitors)
	assert.Empty(t, row.LandmarkStats, "generic page visits add no landmark keys")
}

func TestDailyTotalMatchesVisitRows(t *testing.T) {
	stack := newTestStack(t)
	stack.createLandmark(t, "school", "Elementary School")

	visitor, err := stack.visitors.Resolve("1.2.3.4", "agent", "", "")
	require.NoError(t, err)

	landmarkID := "school"
	for i := 0; i < 5; i++ {
		var lm *string
		if i%2 == 0 {
			lm = &landmarkID
		}
		_, err = stack.visits.Record("1.2.3.4", visitor.ID, lm, nil)
		require.NoError(t, err)
	}

	// The incrementally maintained counter and the raw rows agree
	day := models.StartOfDay(time.Now())
	var rows int64
	require.NoError(t, stack.db.Model(&models.Visit{}).
		Where("timestamp >= ?", day).Count(&rows).Error)

	aggregate, err := stack.analyticsRepo.GetAnalyticsByDate(time.Now())
	require.NoError(t, err)
	assert.EqualValues(t, rows, aggregate.TotalVisits)
	assert.EqualValues(t, 3, aggregate.LandmarkStats["school"])
}

func TestRecordVisitAcceptsAbsurdDuration(t *testing.T) {
	stack := newTestStack(t)

	visitor, err := stack.visitors.Resolve("1.2.3.4", "agent", "", "")
	require.NoError(t, err)

	// Client-computed, unvalidated, accepted as-is
	duration := -12000
	visit, err := stack.visits.Record("1.2.3.4", visitor.ID, nil, &duration)
	require.NoError(t, err)
	require.NotNil(t, visit.Duration)
	assert.Equal(t, -12000, *visit.Duration)
}
