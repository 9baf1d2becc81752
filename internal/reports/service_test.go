package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/screenlog/screenlog-core/internal/apperr"
	"github.com/screenlog/screenlog-core/internal/movies"
	"github.com/screenlog/screenlog-core/internal/users"
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&users.User{}, &movies.Movie{}, &Report{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, staff bool) *users.User {
	u := users.User{Username: name, Email: name + "@example.com", PasswordHash: "x", IsStaff: staff}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func seedMovie(t *testing.T, db *gorm.DB, creator *users.User, title string) *movies.Movie {
	m := movies.Movie{
		Title:           title,
		Slug:            title,
		Description:     "a movie",
		ReleasedAt:      time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 120,
		Genre:           "Drama",
		Language:        "en",
		CreatedByID:     creator.ID,
	}
	require.NoError(t, db.Create(&m).Error)
	return &m
}

func TestFileDuplicateSuppression(t *testing.T) {
	db := setupDB(t)
	alice := seedUser(t, db, "alice", false)
	staff := seedUser(t, db, "mod", true)
	movie := seedMovie(t, db, alice, "heat")

	first, err := File(db, movie.ID, alice.ID, "spam")
	require.NoError(t, err)
	assert.False(t, first.Resolved)

	// A second report is blocked while the first is open.
	_, err = File(db, movie.ID, alice.ID, "still spam")
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	_, err = Resolve(db, first.ID, staff.ID, ActionResolve, "handled")
	require.NoError(t, err)

	// Resolved reports do not block new ones.
	_, err = File(db, movie.ID, alice.ID, "spam again")
	require.NoError(t, err)
}

func TestFileValidation(t *testing.T) {
	db := setupDB(t)
	alice := seedUser(t, db, "alice", false)
	movie := seedMovie(t, db, alice, "heat")

	_, err := File(db, movie.ID, alice.ID, "  ")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = File(db, movie.ID+99, alice.ID, "spam")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestResolveAndDismissAreBothTerminal(t *testing.T) {
	db := setupDB(t)
	alice := seedUser(t, db, "alice", false)
	staff := seedUser(t, db, "mod", true)
	movie := seedMovie(t, db, alice, "heat")

	for _, action := range []string{ActionResolve, ActionDismiss} {
		report, err := File(db, movie.ID, alice.ID, "spam")
		require.NoError(t, err)

		resolved, err := Resolve(db, report.ID, staff.ID, action, "notes for "+action)
		require.NoError(t, err)
		assert.True(t, resolved.Resolved)
		assert.NotNil(t, resolved.ResolvedAt)
		require.NotNil(t, resolved.ResolvedByID)
		assert.Equal(t, staff.ID, *resolved.ResolvedByID)
		assert.Equal(t, "notes for "+action, resolved.AdminNotes)
	}
}

func TestResolveInvalidAction(t *testing.T) {
	db := setupDB(t)
	alice := seedUser(t, db, "alice", false)
	staff := seedUser(t, db, "mod", true)
	movie := seedMovie(t, db, alice, "heat")

	report, err := File(db, movie.ID, alice.ID, "spam")
	require.NoError(t, err)

	_, err = Resolve(db, report.ID, staff.ID, "escalate", "")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = Resolve(db, report.ID+99, staff.ID, ActionResolve, "")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestResolveTwiceOverwritesMetadata(t *testing.T) {
	db := setupDB(t)
	alice := seedUser(t, db, "alice", false)
	staff1 := seedUser(t, db, "mod1", true)
	staff2 := seedUser(t, db, "mod2", true)
	movie := seedMovie(t, db, alice, "heat")

	report, err := File(db, movie.ID, alice.ID, "spam")
	require.NoError(t, err)

	_, err = Resolve(db, report.ID, staff1.ID, ActionResolve, "first pass")
	require.NoError(t, err)

	again, err := Resolve(db, report.ID, staff2.ID, ActionDismiss, "second pass")
	require.NoError(t, err)
	assert.True(t, again.Resolved)
	assert.Equal(t, "second pass", again.AdminNotes)
	assert.Equal(t, staff2.ID, *again.ResolvedByID)
}

func TestListForScopesByRole(t *testing.T) {
	db := setupDB(t)
	alice := seedUser(t, db, "alice", false)
	bob := seedUser(t, db, "bob", false)
	staff := seedUser(t, db, "mod", true)
	m1 := seedMovie(t, db, alice, "heat")
	m2 := seedMovie(t, db, alice, "ronin")

	_, err := File(db, m1.ID, alice.ID, "spam")
	require.NoError(t, err)
	_, err = File(db, m2.ID, bob.ID, "offensive")
	require.NoError(t, err)

	all, err := ListFor(db, staff.ID, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := ListFor(db, alice.ID, false)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, alice.ID, own[0].ReportedByID)
}

func TestStats(t *testing.T) {
	db := setupDB(t)

	stats, err := Stats(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Total)
	assert.Equal(t, "0%", stats.ResolutionRate)

	alice := seedUser(t, db, "alice", false)
	bob := seedUser(t, db, "bob", false)
	carol := seedUser(t, db, "carol", false)
	staff := seedUser(t, db, "mod", true)
	movie := seedMovie(t, db, alice, "heat")

	r1, err := File(db, movie.ID, alice.ID, "spam")
	require.NoError(t, err)
	_, err = File(db, movie.ID, bob.ID, "spam")
	require.NoError(t, err)
	_, err = File(db, movie.ID, carol.ID, "spam")
	require.NoError(t, err)

	_, err = Resolve(db, r1.ID, staff.ID, ActionResolve, "")
	require.NoError(t, err)

	stats, err = Stats(db)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.Pending)
	assert.Equal(t, int64(1), stats.Resolved)
	assert.Equal(t, "33.33%", stats.ResolutionRate)
}
