package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/trailhead-dev/trailhead/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Campground{},
		&models.CampgroundImage{},
		&models.Review{},
	))

	return db
}

func seedCampground(t *testing.T, db *gorm.DB, reviewCount int) (models.User, models.Campground) {
	t.Helper()

	user := models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	campground := models.Campground{
		Title:       "Ridge",
		Price:       25,
		Description: "Quiet spot",
		Location:    "Utah",
		AuthorID:    user.ID,
	}
	require.NoError(t, db.Create(&campground).Error)

	for i := 0; i < reviewCount; i++ {
		review := models.Review{
			CampgroundID: campground.ID,
			AuthorID:     user.ID,
			Rating:       5,
			Body:         fmt.Sprintf("review %d", i),
		}
		require.NoError(t, db.Create(&review).Error)
	}

	return user, campground
}

func TestDeleteCampgroundCascade(t *testing.T) {
	db := openTestDB(t)
	_, campground := seedCampground(t, db, 3)

	require.NoError(t, db.Create(&models.CampgroundImage{
		CampgroundID: campground.ID,
		URL:          "http://img/x",
		Filename:     "x",
	}).Error)

	require.NoError(t, DeleteCampgroundCascade(db, campground.ID))

	var campgrounds, reviews, images int64
	db.Model(&models.Campground{}).Count(&campgrounds)
	db.Model(&models.Review{}).Where("campground_id = ?", campground.ID).Count(&reviews)
	db.Model(&models.CampgroundImage{}).Where("campground_id = ?", campground.ID).Count(&images)

	require.Zero(t, campgrounds)
	require.Zero(t, reviews, "no review may reference the deleted campground")
	require.Zero(t, images)
}

func TestDeleteCampgroundCascadeMissing(t *testing.T) {
	db := openTestDB(t)

	err := DeleteCampgroundCascade(db, 42)
	require.ErrorIs(t, err, ErrCampgroundNotFound)
}

func TestDeleteCampgroundCascadeLeavesSiblingsAlone(t *testing.T) {
	db := openTestDB(t)
	user, doomed := seedCampground(t, db, 2)

	other := models.Campground{
		Title:       "Lakeside",
		Price:       10,
		Description: "Water access",
		Location:    "Oregon",
		AuthorID:    user.ID,
	}
	require.NoError(t, db.Create(&other).Error)
	require.NoError(t, db.Create(&models.Review{
		CampgroundID: other.ID,
		AuthorID:     user.ID,
		Rating:       4,
		Body:         "nice",
	}).Error)

	require.NoError(t, DeleteCampgroundCascade(db, doomed.ID))

	var reviews int64
	db.Model(&models.Review{}).Where("campground_id = ?", other.ID).Count(&reviews)
	require.EqualValues(t, 1, reviews)
}

func TestDeleteReview(t *testing.T) {
	db := openTestDB(t)
	_, campground := seedCampground(t, db, 2)

	var reviews []models.Review
	require.NoError(t, db.Where("campground_id = ?", campground.ID).Find(&reviews).Error)
	require.Len(t, reviews, 2)

	require.NoError(t, DeleteReview(db, campground.ID, reviews[0].ID))

	var remaining []models.Review
	require.NoError(t, db.Where("campground_id = ?", campground.ID).Find(&remaining).Error)
	require.Len(t, remaining, 1)
	require.Equal(t, reviews[1].ID, remaining[0].ID)
}

func TestDeleteReviewMissingParentAborts(t *testing.T) {
	db := openTestDB(t)
	_, campground := seedCampground(t, db, 1)

	var review models.Review
	require.NoError(t, db.First(&review, "campground_id = ?", campground.ID).Error)

	err := DeleteReview(db, campground.ID+100, review.ID)
	require.ErrorIs(t, err, ErrCampgroundNotFound)

	// The review must survive an aborted delete.
	var count int64
	db.Model(&models.Review{}).Where("id = ?", review.ID).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestDeleteReviewWrongParentScope(t *testing.T) {
	db := openTestDB(t)
	user, first := seedCampground(t, db, 1)

	second := models.Campground{
		Title:       "Lakeside",
		Price:       10,
		Description: "Water access",
		Location:    "Oregon",
		AuthorID:    user.ID,
	}
	require.NoError(t, db.Create(&second).Error)

	var review models.Review
	require.NoError(t, db.First(&review, "campground_id = ?", first.ID).Error)

	// Existing review, but addressed through the wrong parent.
	err := DeleteReview(db, second.ID, review.ID)
	require.ErrorIs(t, err, ErrReviewNotFound)

	var count int64
	db.Model(&models.Review{}).Where("id = ?", review.ID).Count(&count)
	require.EqualValues(t, 1, count)
}
