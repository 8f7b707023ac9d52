package handlers

import (
	"testing"

	"coffee-shop-api/auth"
	"coffee-shop-api/config"
	"coffee-shop-api/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func TestGetOrCreateProfileCreates(t *testing.T) {
	db := openTestDB(t)

	identity := &auth.Identity{
		UID:           "fb-uid-1",
		Email:         "ann@x.com",
		Name:          "Ann",
		EmailVerified: true,
	}
	user, err := getOrCreateProfile(db, identity)
	require.NoError(t, err)
	assert.Equal(t, "fb-uid-1", user.ID)
	assert.Equal(t, "Ann", user.FullName)
	assert.True(t, user.EmailVerified)

	// Second verification resolves the same row.
	again, err := getOrCreateProfile(db, identity)
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestGetOrCreateProfileRekeysEmailMatch(t *testing.T) {
	db := openTestDB(t)

	// Account created before external-identity linkage existed.
	legacy := models.User{
		ID:       "legacy-uuid",
		FullName: "Ann",
		Email:    "ann@x.com",
	}
	require.NoError(t, db.Create(&legacy).Error)

	user, err := getOrCreateProfile(db, &auth.Identity{
		UID:   "fb-uid-1",
		Email: "ann@x.com",
		Name:  "Ann",
	})
	require.NoError(t, err)
	assert.Equal(t, "fb-uid-1", user.ID)
	assert.Equal(t, "Ann", user.FullName)

	// The row was re-keyed in place, not recreated.
	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)

	var missing models.User
	err = db.First(&missing, "id = ?", "legacy-uuid").Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
