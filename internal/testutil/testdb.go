package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"eventstaff_backend/database"
	"eventstaff_backend/internal/auth"
	"eventstaff_backend/internal/models"
)

// NewDB returns a migrated in-memory SQLite database private to t.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// Clock is a settable time source for services and workers.
type Clock struct {
	T time.Time
}

func NewClock(t time.Time) *Clock { return &Clock{T: t} }

func (c *Clock) Now() time.Time { return c.T }

func (c *Clock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// CreateClient inserts a client user, profile and free subscription.
func CreateClient(t *testing.T, db *gorm.DB, email string) *models.Profile {
	t.Helper()
	user := createUser(t, db, email)

	profile := models.NewClientProfile(user.ID, "Test Client", "+919800000001", "Mumbai", "Test Events Pvt Ltd")
	require.NoError(t, db.Create(profile).Error)
	require.NoError(t, db.Create(&models.Subscription{
		ClientID: user.ID,
		Plan:     models.PlanFree,
		Status:   models.SubscriptionStatusActive,
	}).Error)
	return profile
}

// CreateStaff inserts a staff user and profile.
func CreateStaff(t *testing.T, db *gorm.DB, email string) *models.Profile {
	t.Helper()
	user := createUser(t, db, email)

	profile := models.NewStaffProfile(user.ID, "Test Staff", "+919800000002", "Mumbai", []string{"Server"})
	require.NoError(t, db.Create(profile).Error)
	return profile
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{Email: email, PasswordHash: hash}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateEvent inserts an active event for clientID on shiftDate.
func CreateEvent(t *testing.T, db *gorm.DB, clientID string, shiftDate time.Time, roles ...models.EventRole) *models.Event {
	t.Helper()
	if len(roles) == 0 {
		roles = []models.EventRole{
			{Name: "Server", Count: 3, Gender: models.GenderAny, Pay: 1200},
			{Name: "Security", Count: 1, Gender: models.GenderMale, Pay: 1800},
		}
	}

	event := &models.Event{
		ClientID:      clientID,
		City:          "Mumbai",
		Area:          "Andheri",
		Venue:         "Hall A",
		ShiftDate:     shiftDate,
		ShiftStart:    "10:00",
		ShiftEnd:      "18:00",
		Roles:         roles,
		TotalRequired: models.TotalRequired(roles),
		Status:        models.EventStatusActive,
	}
	require.NoError(t, db.Create(event).Error)
	return event
}
