package services

import (
	"fmt"
	"testing"

	"github.com/ethanmoreau/bikejourney/internal/models"
	"github.com/ethanmoreau/bikejourney/internal/repository"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a uniquely named shared in-memory database and
// migrates the full schema. The name must be unique per test so the
// connection pool shares one database without tests seeing each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Landmark{},
		&models.Visitor{},
		&models.Visit{},
		&models.GuestbookEntry{},
		&models.Analytics{},
	))
	return db
}

// testStack wires the full service stack over one database, the same
// way run-server does.
type testStack struct {
	db        *gorm.DB
	landmarks *LandmarkService
	visitors  *VisitorService
	visits    *VisitService
	guestbook *GuestbookService
	analytics *AnalyticsService

	guestbookRepo repository.GuestbookRepository
	analyticsRepo repository.AnalyticsRepository
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	db := newTestDB(t)
	landmarkRepo := repository.NewLandmarkRepository(db)
	visitorRepo := repository.NewVisitorRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	guestbookRepo := repository.NewGuestbookRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	return &testStack{
		db:            db,
		landmarks:     NewLandmarkService(landmarkRepo),
		visitors:      NewVisitorService(visitorRepo),
		visits:        NewVisitService(visitRepo, visitorRepo, landmarkRepo),
		guestbook:     NewGuestbookService(guestbookRepo, landmarkRepo, 50, 50, 500),
		analytics:     NewAnalyticsService(analyticsRepo, visitRepo, visitorRepo, 7),
		guestbookRepo: guestbookRepo,
		analyticsRepo: analyticsRepo,
	}
}

// createLandmark is a shorthand for registering a landmark in tests.
func (s *testStack) createLandmark(t *testing.T, id, title string) *models.Landmark {
	t.Helper()

	landmark, err := s.landmarks.Create(id, LandmarkInput{
		Title:            title,
		SplineObjectName: title + "_Stop",
	})
	require.NoError(t, err)
	return landmark
}
